package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/chem/molkit"
	"github.com/Keith9922/Ketcher-demo/engine/chem/remote"
	"github.com/Keith9922/Ketcher-demo/engine/infra/monitoring"
	"github.com/Keith9922/Ketcher-demo/engine/infra/server"
	"github.com/Keith9922/Ketcher-demo/engine/infra/server/appstate"
	"github.com/Keith9922/Ketcher-demo/engine/task"
	"github.com/Keith9922/Ketcher-demo/pkg/config"
	"github.com/Keith9922/Ketcher-demo/pkg/logger"
)

// ServeCmd builds the serve command that runs the HTTP server.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server", "start"},
		Short:   "Start the annotation server",
		RunE:    runServe,
	}
	cmd.Flags().String("env-file", "", "Path to a .env file to load before reading configuration")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loadEnvFile(cmd); err != nil {
		return err
	}

	cfg, err := config.NewLoader().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	normalizer := chem.NewNormalizer(engine, cfg.Chem.NormalizeTimeout)

	mon, err := monitoring.NewService()
	if err != nil {
		return fmt.Errorf("failed to initialize monitoring: %w", err)
	}

	store := task.NewStore()
	if err := seedStore(ctx, cfg, store); err != nil {
		return err
	}

	state, err := appstate.NewState(appstate.NewBaseDeps(cfg, store, normalizer, mon))
	if err != nil {
		return fmt.Errorf("failed to build app state: %w", err)
	}

	srv, err := server.NewServer(cfg, state)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(ctx)
}

func loadEnvFile(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if path == "" {
		// A plain ./.env is optional.
		if _, statErr := os.Stat(".env"); statErr == nil {
			return godotenv.Load()
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func buildEngine(cfg *config.Config) (chem.Engine, error) {
	switch cfg.Chem.Engine {
	case config.EngineBuiltin:
		return molkit.New(), nil
	case config.EngineRemote:
		return remote.New(cfg.Chem.RemoteURL), nil
	default:
		return nil, fmt.Errorf("unknown chem engine: %s", cfg.Chem.Engine)
	}
}

func seedStore(ctx context.Context, cfg *config.Config, store *task.Store) error {
	if cfg.Seed.Disable {
		return nil
	}
	var (
		seeds []*task.Task
		err   error
	)
	if cfg.Seed.File != "" {
		seeds, err = task.LoadSeeds(cfg.Seed.File)
	} else {
		seeds, err = task.DefaultSeeds()
	}
	if err != nil {
		return fmt.Errorf("failed to build seed tasks: %w", err)
	}
	if err := task.Seed(ctx, store, seeds); err != nil {
		return fmt.Errorf("failed to seed task store: %w", err)
	}
	logger.FromContext(ctx).Info("seeded task store", "tasks", store.Len())
	return nil
}
