package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/communitymap/communitymap/internal/profile"
	"github.com/communitymap/communitymap/internal/version"
	"github.com/communitymap/communitymap/server"
	"github.com/communitymap/communitymap/store"
	"github.com/communitymap/communitymap/store/db"
)

const (
	greetingBanner  = `Community Resource Directory %s`
	shutdownTimeout = 10 * time.Second
)

var rootCmd = &cobra.Command{
	Use:   "communitymap",
	Short: "A community resource directory with live open/closed status",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:        viper.GetString("mode"),
			Addr:        viper.GetString("addr"),
			Port:        viper.GetInt("port"),
			Data:        viper.GetString("data"),
			Driver:      viper.GetString("driver"),
			DSN:         viper.GetString("dsn"),
			InstanceURL: viper.GetString("instance-url"),
			Version:     version.GetCurrentVersion(viper.GetString("mode")),
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		setupLogger(instanceProfile)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		fmt.Printf(greetingBanner+"\n", instanceProfile.Version)

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(s.Start)
		group.Go(func() error {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
			case <-groupCtx.Done():
			}
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			s.Shutdown(shutdownCtx)
			cancel()
			return nil
		})

		return group.Wait()
	},
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8230)
	viper.SetDefault("data", ".")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("instance-url", "http://localhost:8230")

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")
	rootCmd.PersistentFlags().String("instance-url", "http://localhost:8230", "public url of this instance")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("communitymap")
	viper.AutomaticEnv()
}

func setupLogger(instanceProfile *profile.Profile) {
	var handler slog.Handler
	if instanceProfile.Mode == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
