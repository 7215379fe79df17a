package strata

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/strata/pkg/config"
	"github.com/soundprediction/strata/pkg/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the strata HTTP server",
	Long: `Start the strata HTTP server to provide REST API access to the
multi-layer knowledge engine.

The server provides endpoints for:
- Weighted multi-layer queries
- Engine statistics
- Snapshot rebuilds
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Data flags
	serverCmd.Flags().Bool("demo", false, "Serve the built-in demo record set")
	serverCmd.Flags().String("data-format", "yaml", "Record file format (yaml, parquet)")
	serverCmd.Flags().String("research-records", "", "Path to the research layer record file")
	serverCmd.Flags().String("investor-records", "", "Path to the investor layer record file")
	serverCmd.Flags().String("founder-records", "", "Path to the founder layer record file")
	serverCmd.Flags().String("store-path", "", "Path to the local record staging store (optional)")

	// Search flags
	serverCmd.Flags().Int("top-k", 5, "Maximum matches per layer")
	serverCmd.Flags().Float64("min-score", 0.1, "Minimum similarity for a match")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrideConfigWithFlags(cmd, cfg)

	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg)

	fmt.Println("Initializing strata...")
	ctx := context.Background()
	engine, err := initializeEngine(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize strata: %w", err)
	}
	defer engine.Close()

	srv := server.New(cfg, engine)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Data flags
	if cmd.Flags().Changed("demo") {
		cfg.Data.Demo, _ = cmd.Flags().GetBool("demo")
	}
	if cmd.Flags().Changed("data-format") {
		cfg.Data.Format, _ = cmd.Flags().GetString("data-format")
	}
	if cmd.Flags().Changed("research-records") {
		cfg.Data.Research, _ = cmd.Flags().GetString("research-records")
	}
	if cmd.Flags().Changed("investor-records") {
		cfg.Data.Investor, _ = cmd.Flags().GetString("investor-records")
	}
	if cmd.Flags().Changed("founder-records") {
		cfg.Data.Founder, _ = cmd.Flags().GetString("founder-records")
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Data.StorePath, _ = cmd.Flags().GetString("store-path")
	}

	// Search flags
	if cmd.Flags().Changed("top-k") {
		cfg.Search.TopK, _ = cmd.Flags().GetInt("top-k")
	}
	if cmd.Flags().Changed("min-score") {
		cfg.Search.MinScore, _ = cmd.Flags().GetFloat64("min-score")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	if !cfg.Data.Demo && cfg.Data.Research == "" && cfg.Data.Investor == "" && cfg.Data.Founder == "" {
		return fmt.Errorf("no record files configured; pass --demo or at least one *-records flag")
	}
	return nil
}
