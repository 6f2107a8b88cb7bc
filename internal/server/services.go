package server

import (
	"context"
	"fmt"

	"github.com/tnt-sales/docsync/internal/docsdk"
	"github.com/tnt-sales/docsync/internal/identity"
	"github.com/tnt-sales/docsync/internal/migrate"
	"github.com/tnt-sales/docsync/internal/server/history"
	"github.com/tnt-sales/docsync/internal/server/session"
	"github.com/tnt-sales/docsync/internal/server/v1/ws"
)

type Services struct {
	SDK      *docsdk.DocSDK
	Sessions *session.Manager
	Runner   *migrate.Runner
	Journal  *history.Journal
	Feed     *ws.ProgressFeed
}

func NewServices(config *Config) (*Services, error) {
	driveTokens := tokenProvider(&config.Drive)

	sdk, err := docsdk.New(&docsdk.Config{
		DriveURL:    config.Drive.URL,
		StoreURL:    config.Store.URL,
		DriveTokens: driveTokens,
		StoreTokens: tokenProvider(&config.Store),
	})
	if err != nil {
		return nil, fmt.Errorf("create sdk: %w", err)
	}

	journal := history.NewJournal(config.DBPath)
	feed := ws.NewProgressFeed()

	orch := migrate.NewOrchestrator(sdk.Drive, sdk.Store, migrate.MultiSink{journal, feed})
	runner := migrate.NewRunner(orch, driveTokens)

	sessions := session.NewManager(sdk.Drive, config.StartFolder, config.SessionTTL)

	return &Services{
		SDK:      sdk,
		Sessions: sessions,
		Runner:   runner,
		Journal:  journal,
		Feed:     feed,
	}, nil
}

func tokenProvider(remote *RemoteConfig) identity.TokenProvider {
	if remote.TokenEnv != "" {
		return identity.NewCaching(identity.Env(remote.TokenEnv))
	}
	return identity.NewCaching(identity.Static(remote.Token))
}

func (s *Services) Start(ctx context.Context) error {
	if err := s.Journal.Open(); err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	return nil
}

func (s *Services) Shutdown(ctx context.Context) error {
	s.SDK.Close()
	if err := s.Journal.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}
