package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_flames/internal/adapters/logger"
	"github.com/baditaflorin/go_flames/internal/config"
	"github.com/baditaflorin/go_flames/internal/server"
	"github.com/baditaflorin/go_flames/pkg/flames"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := createLogger(cfg.LogFile, cfg.JSONLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if err := run(cfg, log); err != nil {
		log.Error("Server error", "error", err)
		log.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, log l.Logger) error {
	log.Info("Starting FLAMES HTTP server",
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"concurrency", cfg.Concurrency,
		"sequence", cfg.Sequence,
	)

	seq, err := cfg.ParsedSequence()
	if err != nil {
		return err
	}

	opts := []flames.Option{
		flames.WithLogger(log),
		flames.WithSequence(seq),
		flames.WithWarmUp(cfg.WarmUp),
	}
	if cfg.FastNormalizer {
		opts = append(opts, flames.WithFastNormalizer())
	}

	calc, err := flames.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize FLAMES: %w", err)
	}

	log.Info("FLAMES initialized",
		"warm_up", cfg.WarmUp,
		"fast_normalizer", cfg.FastNormalizer,
		"cpus", runtime.NumCPU(),
	)

	srv, err := server.New(calc, logger.FromExisting(log, "component", "http"), cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	httpServer := &fasthttp.Server{
		Handler:               srv.Handler,
		Name:                  "FlamesServer",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		MaxRequestBodySize:    cfg.MaxRequestSize,
		Concurrency:           cfg.Concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := httpServer.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	log.Info("Server listening", "address", cfg.Address())
	if err := httpServer.ListenAndServe(cfg.Address()); err != nil {
		return err
	}

	<-idleConnsClosed
	log.Info("Server stopped")
	return nil
}

// createLogger creates the service logger, writing to stdout or logFile.
func createLogger(logFile string, jsonFormat bool) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	return logger.New(logger.ServiceConfig(output, jsonFormat))
}
