// intervals-mcp is a Model Context Protocol server for the intervals.icu
// API. It speaks MCP over stdio; all logging goes to stderr so stdout
// stays clean for the transport.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/icu-tools/intervals-mcp/internal/config"
	"github.com/icu-tools/intervals-mcp/internal/icu"
	mcpsrv "github.com/icu-tools/intervals-mcp/internal/mcp"
	"github.com/icu-tools/intervals-mcp/internal/setup"
)

const version = "1.0.0"

func main() {
	doSetup := flag.Bool("setup", false, "Register this binary with Claude Desktop and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("intervals-mcp %s\n", version)
		return
	}

	if *doSetup {
		bin, err := os.Executable()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve binary path: %v\n", err)
			os.Exit(1)
		}
		res, err := setup.Install(bin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registered intervals-icu in %s\n", res.Destination)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	client := icu.New(cfg, icu.WithLogger(logger))

	logger.Info().
		Str("version", version).
		Str("athlete_id", cfg.AthleteID).
		Str("base_url", cfg.BaseURL).
		Msg("starting intervals-mcp")

	if err := server.ServeStdio(mcpsrv.NewServer(client)); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
