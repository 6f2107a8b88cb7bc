package server

import (
	"fmt"
	"time"
)

const (
	DefaultAddr        = "127.0.0.1:8080"
	DefaultStartFolder = "Google RAG"
	DefaultDBPath      = "docsync.db"
	DefaultRateLimit   = "120-M"
)

type Config struct {
	HTTP        HTTPConfig
	Drive       RemoteConfig
	Store       RemoteConfig
	StartFolder string
	DBPath      string
	RateLimit   string
	SessionTTL  time.Duration
}

type HTTPConfig struct {
	Addr     string
	CertFile string
	KeyFile  string
}

// RemoteConfig points at one upstream service. The token can be given
// inline or by naming an environment variable that holds it.
type RemoteConfig struct {
	URL      string
	Token    string
	TokenEnv string
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultAddr
	}
	if c.Drive.URL == "" {
		return fmt.Errorf("drive service URL is required")
	}
	if c.Store.URL == "" {
		return fmt.Errorf("document store URL is required")
	}
	if c.StartFolder == "" {
		c.StartFolder = DefaultStartFolder
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
	if c.RateLimit == "" {
		c.RateLimit = DefaultRateLimit
	}
	return nil
}
