package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"bidding/internal/adapters/out/postgres/migrations"
	"bidding/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand builds the bidding CLI.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bidding",
		Short:         "Freight bidding marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newProviderCmd())

	return root
}

// Execute runs the bidding CLI.
func Execute(ctx context.Context) error {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

// runtimeEnv is what every subcommand needs before doing its work.
type runtimeEnv struct {
	cfg    Config
	logger *zap.Logger
	db     *Database
}

func withEnv(ctx context.Context, fn func(ctx context.Context, e runtimeEnv) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		logger.Error("database unavailable", zap.Error(err))
		return err
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, runtimeEnv{cfg: cfg, logger: logger, db: db})
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Run the HTTP API and the outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return withEnv(cmd.Context(), func(ctx context.Context, e runtimeEnv) error {
				if migrate {
					if err := migrateUp(ctx, e); err != nil {
						return err
					}
				}
				return serve(ctx, e)
			})
		},
	}
	cmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, e runtimeEnv) error {
	root := NewCompositionRoot(e.cfg, e.db.Gorm, e.logger)
	defer func() {
		if err := root.Close(); err != nil {
			e.logger.Warn("close composition root", zap.Error(err))
		}
	}()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	router := root.CreateEcho()
	server := &http.Server{
		Addr:    e.cfg.HTTPAddr(),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		e.logger.Info("starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			e.logger.Error("http server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	e.logger.Info("stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e runtimeEnv) error {
				if err := migrateUp(ctx, e); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			all, _ := cmd.Flags().GetBool("all")
			if all {
				steps = 0
			}
			return withEnv(cmd.Context(), func(ctx context.Context, e runtimeEnv) error {
				mig, err := migrations.New(e.db.SQL, e.logger)
				if err != nil {
					return err
				}
				if err = mig.Down(ctx, steps); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migration steps to roll back")
	downCmd.Flags().Bool("all", false, "Roll back all applied migrations")

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func migrateUp(ctx context.Context, e runtimeEnv) error {
	mig, err := migrations.New(e.db.SQL, e.logger)
	if err != nil {
		return err
	}
	return mig.Up(ctx)
}

func newProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage logistics providers",
	}

	registerCmd := &cobra.Command{
		Use:   "register [id] [name]",
		Short: "Register a provider or update its name and activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}
			inactive, _ := cmd.Flags().GetBool("inactive")

			return withEnv(cmd.Context(), func(ctx context.Context, e runtimeEnv) error {
				root := NewCompositionRoot(e.cfg, e.db.Gorm, e.logger)
				defer func() { _ = root.Close() }()

				if err := root.RegisterProvider(ctx, providerID, args[1], !inactive); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "provider %s registered\n", providerID)
				return nil
			})
		},
	}
	registerCmd.Flags().Bool("inactive", false, "Register the provider as inactive")

	cmd.AddCommand(registerCmd)
	return cmd
}
