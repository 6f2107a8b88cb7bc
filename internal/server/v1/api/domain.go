package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/identity"
	"github.com/tnt-sales/docsync/internal/migrate"
)

// AbortDomainError translates pipeline and SDK errors into the right
// HTTP status and error code.
func AbortDomainError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrAuthRequired):
		AbortWithError(ctx, http.StatusUnauthorized, CodeAuthRequired, err)
	case errors.Is(err, migrate.ErrJobRunning):
		AbortWithError(ctx, http.StatusConflict, CodeJobRunning, err)
	case errors.Is(err, migrate.ErrEmptySelection):
		AbortWithError(ctx, http.StatusBadRequest, CodeEmptySelection, err)
	case errors.Is(err, migrate.ErrNotFolder):
		AbortWithError(ctx, http.StatusBadRequest, CodeNotFolder, err)
	case errors.Is(err, migrate.ErrNotFile):
		AbortWithError(ctx, http.StatusBadRequest, CodeNotFile, err)
	case errors.Is(err, migrate.ErrRemoteUnavailable):
		AbortWithError(ctx, http.StatusBadGateway, CodeDriveUnavailable, err)
	case errors.Is(err, docsdk.ErrNotFound):
		AbortWithError(ctx, http.StatusNotFound, CodeNotFound, err)
	case errors.Is(err, docsdk.ErrUnauthorized):
		AbortWithError(ctx, http.StatusUnauthorized, CodeAuthRequired, err)
	default:
		AbortWithError(ctx, http.StatusInternalServerError, CodeInternalError, err)
	}
}
