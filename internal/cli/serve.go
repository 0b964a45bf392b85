package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/satya/internal/pipeline"
	"github.com/ppiankov/satya/internal/server"
	"github.com/ppiankov/satya/internal/worker"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve exposes verification over HTTP:

  POST /api/v1/verify    {"text": "..."} or {"url": "..."}
  GET  /api/v1/sources   trusted source registry
  GET  /health           liveness and engine name

Example:
  satya serve
  satya serve --addr 127.0.0.1:9000 --cache`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&useCache, "cache", false, "cache extracted pages on disk")
	addEngineFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	p.SetLimiter(worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.BurstSize))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "✓ Satya %s listening on %s (engine: %s)\n", version, cfg.Server.Addr, p.Provider().Name())

	srv := server.NewServer(p, cfg.Server, version)
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Server stopped\n")
	return nil
}
