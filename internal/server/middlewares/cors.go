package middlewares

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the browser UI to talk to the API from any origin. The
// session header must be readable by the frontend so it can echo it back.
func CORS() gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins:    []string{"*"},
		AllowHeaders:    []string{"*"},
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowWebSockets: true,
		ExposeHeaders:   []string{SessionHeader},
	}
	return cors.New(config)
}
