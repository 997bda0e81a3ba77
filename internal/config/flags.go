package config

import (
	"flag"
	"fmt"
	"io"
)

// ParseFlags parses the server command line. The -config flag names a TOML
// file; flags given explicitly override the file and the environment.
func ParseFlags(name string, args []string, output io.Writer) (Config, error) {
	def := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "Path to a TOML configuration file")
	port := fs.Int("port", def.Port, "HTTP server port")
	readTimeout := fs.Duration("read-timeout", def.ReadTimeout, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", def.WriteTimeout, "HTTP write timeout")
	requestTimeout := fs.Duration("request-timeout", def.RequestTimeout, "Per-request computation timeout")
	maxRequestSize := fs.Int("max-request-size", def.MaxRequestSize, "Maximum request size in bytes")
	concurrency := fs.Int("concurrency", def.Concurrency, "Maximum number of concurrent connections (0 = fasthttp default)")
	sequence := fs.String("sequence", def.Sequence, "Category order used for elimination")
	warmUp := fs.Bool("warm-up", def.WarmUp, "Precompute statistics and warm up on startup")
	fastNormalizer := fs.Bool("fast-normalizer", def.FastNormalizer, "Use the table-driven ASCII normalizer")
	logFile := fs.String("log-file", def.LogFile, "Log file path (empty = stdout)")
	jsonLogs := fs.Bool("json-logs", def.JSONLogs, "Write logs as JSON")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [options]\n\nOptions:\n", name)
		fs.PrintDefaults()
		fmt.Fprintf(output, "\nEvery option can also be set with an environment variable, e.g. %sPORT=9090.\n", EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*configPath)
	if err != nil {
		return Config{}, err
	}

	overrides := map[string]func(){
		"port":             func() { cfg.Port = *port },
		"read-timeout":     func() { cfg.ReadTimeout = *readTimeout },
		"write-timeout":    func() { cfg.WriteTimeout = *writeTimeout },
		"request-timeout":  func() { cfg.RequestTimeout = *requestTimeout },
		"max-request-size": func() { cfg.MaxRequestSize = *maxRequestSize },
		"concurrency":      func() { cfg.Concurrency = *concurrency },
		"sequence":         func() { cfg.Sequence = *sequence },
		"warm-up":          func() { cfg.WarmUp = *warmUp },
		"fast-normalizer":  func() { cfg.FastNormalizer = *fastNormalizer },
		"log-file":         func() { cfg.LogFile = *logFile },
		"json-logs":        func() { cfg.JSONLogs = *jsonLogs },
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
