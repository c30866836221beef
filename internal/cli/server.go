package cli

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slopestore/slopestored/internal/config"
	"github.com/slopestore/slopestored/internal/core/events"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/tx"
	"github.com/slopestore/slopestored/internal/server"
	"github.com/slopestore/slopestored/internal/storage/keyValueDb"
	kvbbolt "github.com/slopestore/slopestored/internal/storage/keyValueDb/bbolt"
	kvpebble "github.com/slopestore/slopestored/internal/storage/keyValueDb/pebble"
	"github.com/slopestore/slopestored/internal/storage/ledgerstore"
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the marketplace ledger daemon",
	Long: `Start the slopestored server which provides:
- Transaction submission over HTTP (POST /tx)
- Ledger entry queries (GET /entry)
- Websocket event feed (GET /ws)`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Running the root command without a subcommand starts the server.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serverCmd.RunE(cmd, args)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if standalone, _ := cmd.Flags().GetBool("standalone"); standalone {
		cfg.Standalone = true
	}

	programID, err := cfg.ResolveProgramID()
	if err != nil {
		return err
	}

	var (
		view  state.View
		store *ledgerstore.Store
	)
	if cfg.Standalone {
		view = state.NewMemoryView()
	} else {
		manager, err := openManager(cfg)
		if err != nil {
			return err
		}
		defer manager.Close()

		db, err := manager.OpenDB("ledger")
		if err != nil {
			return err
		}
		store, err = ledgerstore.New(db, cfg.Database.CacheSize)
		if err != nil {
			return err
		}
		view = store
	}

	engine := tx.NewEngine(view, tx.EngineConfig{ProgramID: programID}, events.NewEmitter())
	srv := server.New(cfg, engine, store)

	if !quiet {
		fmt.Printf("slopestored %s\n", rootCmd.Version)
		fmt.Printf("  - Submit:    http://%s/tx\n", srv.Addr())
		fmt.Printf("  - Entries:   http://%s/entry\n", srv.Addr())
		fmt.Printf("  - Events:    ws://%s/ws\n", srv.Addr())
		if cfg.Standalone {
			fmt.Println("  - Mode:      standalone (in-memory ledger)")
		} else {
			fmt.Printf("  - Database:  %s at %s\n", cfg.Database.Type, cfg.Database.Path)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Println("shutdown complete")
	return nil
}

func openManager(cfg *config.Config) (keyValueDb.Manager, error) {
	switch cfg.Database.Type {
	case "bbolt":
		return kvbbolt.NewBBoltManager(cfg.Database.Path), nil
	case "pebble":
		return kvpebble.NewManager(cfg.Database.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}
}
