package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "airnav/internal/mcp"
	"airnav/internal/export"
	"airnav/internal/nasr"
	"airnav/internal/secret"
	"airnav/internal/service"
	"airnav/internal/storage"
)

var (
	flagDB      string
	flagDataDir string
)

func main() {
	root := &cobra.Command{
		Use:   "airnav",
		Short: "Ingest FAA NASR subscriber files into a queryable snapshot",
		Long: `airnav parses the legacy fixed-width NASR subscriber files (APT, NAV,
AWY, ILS) into a relational snapshot, kept in a local SQLite database
and exportable to external databases.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagDB, "db", "airnav.db", "path to the snapshot database")
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", ".", "directory holding the subscriber files")

	root.AddCommand(syncCmd(), watchCmd(), statusCmd(), exportCmd(), mcpCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// deps opens the database and wires the service graph.
func deps() (*storage.DB, *service.SyncService, error) {
	db, err := storage.New(flagDB)
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewSyncService(
		flagDataDir,
		storage.NewAggregateStore(db),
		storage.NewRunStore(db),
		storage.NewQueryStore(db),
		&service.LogEmitter{Printf: log.Printf},
	)
	return db, svc, nil
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one ingestion pass now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, svc, err := deps()
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := svc.RunSync(cmd.Context(), "manual")
			if err != nil {
				return err
			}
			fmt.Printf("sync %s: %d airports, %d navaids, %d airways, %d ILS\n",
				result.Status, result.Airports, result.Navaids, result.Airways, result.ILS)
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	var cronExpr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the data directory and re-sync on changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, svc, err := deps()
			if err != nil {
				return err
			}
			defer db.Close()
			defer svc.Stop()

			ctx := cmd.Context()
			if err := svc.Watch(ctx); err != nil {
				return err
			}
			if cronExpr != "" {
				if err := svc.Schedule(ctx, cronExpr); err != nil {
					return err
				}
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			log.Println("shutting down, waiting for in-flight sync")
			waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			svc.WaitRunning(waitCtx)
			return nil
		},
	}
	cmd.Flags().StringVar(&cronExpr, "cron", "", "additionally sync on this cron schedule")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the latest run and snapshot counts",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := storage.New(flagDB)
			if err != nil {
				return err
			}
			defer db.Close()

			run, err := storage.NewRunStore(db).LatestRun()
			if err != nil {
				return err
			}
			if run == nil {
				fmt.Println("no sync has run yet")
				return nil
			}
			fmt.Printf("last run %s (%s): %s\n", run.ID, run.TriggeredBy, run.Status)
			if run.Error != "" {
				fmt.Printf("  error: %s\n", run.Error)
			}

			airports, navaids, airways, ils, err := storage.NewQueryStore(db).Counts()
			if err != nil {
				return err
			}
			fmt.Printf("snapshot: %d airports, %d navaids, %d airways, %d ILS\n",
				airports, navaids, airways, ils)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var cfg export.Config
	var driver, secretKey string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Parse the subscriber files straight into an external database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Driver = export.Driver(driver)

			password, err := lookupPassword(secretKey)
			if err != nil {
				return err
			}

			dest, err := export.New(cfg, password)
			if err != nil {
				return err
			}
			defer dest.Close()

			ctx := cmd.Context()
			if err := dest.Ping(ctx); err != nil {
				return fmt.Errorf("export target unreachable: %w", err)
			}

			// An export is a normal pass with the external database as
			// its sink; the local snapshot is not touched.
			pass, err := nasr.NewPass(dest)
			if err != nil {
				return err
			}
			for _, name := range pass.Files() {
				parser, _ := pass.ParserFor(name)
				data, err := os.ReadFile(filepath.Join(flagDataDir, name))
				if os.IsNotExist(err) {
					log.Printf("export: %s not present, skipping", name)
					continue
				}
				if err != nil {
					return err
				}
				if err := parser.Format().Run(nasr.RecordLines(data)); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				if err := parser.Finish(ctx); err != nil {
					return fmt.Errorf("%s: finalize: %w", name, err)
				}
			}
			fmt.Println("export complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "sqlite", "target driver: postgres, mysql, sqlite, mongodb")
	cmd.Flags().StringVar(&cfg.Host, "host", "", "target host (file path for sqlite)")
	cmd.Flags().IntVar(&cfg.Port, "port", 0, "target port (0 for the driver default)")
	cmd.Flags().StringVar(&cfg.Database, "database", "", "target database name")
	cmd.Flags().StringVar(&cfg.Username, "username", "", "target username")
	cmd.Flags().StringVar(&cfg.SSLMode, "sslmode", "", "TLS mode (postgres: disable/require, mysql: require)")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "secret store key holding the target password")
	return cmd
}

// lookupPassword resolves the export password: environment first, then
// the macOS keychain. An empty key means no password.
func lookupPassword(key string) (string, error) {
	if key == "" {
		return "", nil
	}
	for _, store := range []secret.SecretStore{secret.NewEnvStore(), secret.NewKeychainStore()} {
		v, err := store.Get(key)
		if err != nil {
			return "", err
		}
		if len(v) > 0 {
			return string(v), nil
		}
	}
	return "", fmt.Errorf("no secret found for key %q", key)
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the snapshot over the Model Context Protocol on stdio",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, svc, err := deps()
			if err != nil {
				return err
			}
			defer db.Close()
			defer svc.Stop()

			srv := mcpserver.New(mcpserver.Deps{
				Query: storage.NewQueryStore(db),
				Runs:  storage.NewRunStore(db),
				Sync:  svc,
			})
			return srv.ServeStdio()
		},
	}
}
