package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tnt-sales/docsync/internal/server"
	"github.com/tnt-sales/docsync/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "docsync",
	Short:   "Batch document synchronization server",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		config := &server.Config{
			HTTP: server.HTTPConfig{
				Addr:     viper.GetString("bind"),
				CertFile: viper.GetString("cert"),
				KeyFile:  viper.GetString("key"),
			},
			Drive: server.RemoteConfig{
				URL:   viper.GetString("drive_url"),
				Token: viper.GetString("drive_token"),
			},
			Store: server.RemoteConfig{
				URL:   viper.GetString("store_url"),
				Token: viper.GetString("store_token"),
			},
			StartFolder: viper.GetString("start_folder"),
			DBPath:      viper.GetString("db"),
			RateLimit:   viper.GetString("rate_limit"),
			SessionTTL:  viper.GetDuration("session_ttl"),
		}

		s, err := server.New(config)
		if err != nil {
			return err
		}

		cmd.SilenceUsage = true
		defer slog.Info("Bye!")
		return s.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("bind", "b", server.DefaultAddr, "Address to bind the server")
	rootCmd.Flags().String("cert", "", "Path to the TLS certificate file")
	rootCmd.Flags().String("key", "", "Path to the TLS key file")
	rootCmd.Flags().String("drive-url", "", "Base URL of the source drive API")
	rootCmd.Flags().String("store-url", "", "Base URL of the document store API")
	rootCmd.Flags().String("start-folder", server.DefaultStartFolder, "Drive folder to open first")
	rootCmd.Flags().String("db", server.DefaultDBPath, "Path to the job history database")
	rootCmd.Flags().String("rate-limit", server.DefaultRateLimit, "API rate limit (ulule format, e.g. 120-M)")
	rootCmd.Flags().Duration("session-ttl", 30*time.Minute, "Idle browser session lifetime")
}

func loadConfig(cmd *cobra.Command) error {
	// .env is optional; tokens usually arrive through it
	_ = godotenv.Load()

	viper.SetEnvPrefix("DOCSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		key := strings.ReplaceAll(flag.Name, "-", "_")
		_ = viper.BindPFlag(key, flag)
	})
	return nil
}

func main() {
	setupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setupLogger() {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}
