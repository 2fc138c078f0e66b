package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/optcoach/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// optcoach-mcp serves the MCP tools over stdio and forwards every call to a
// running optcoach server.
func main() {
	serverURL := flag.String("server", "", "optcoach server URL (default $OPTCOACH_URL)")
	apiKey := flag.String("api-key", "", "API key (default $OPTCOACH_API_KEY)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("optcoach-mcp", Version)
		return
	}

	// stdout carries the protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to read .env", "error", err)
	}
	if *serverURL == "" {
		*serverURL = os.Getenv("OPTCOACH_URL")
	}
	if *apiKey == "" {
		*apiKey = os.Getenv("OPTCOACH_API_KEY")
	}

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: optcoach-mcp -server <URL> [-api-key KEY]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	client := mcp.NewHTTPClient(*serverURL, *apiKey)
	log.Info("optcoach-mcp starting", "version", Version, "server", *serverURL)

	if err := mcpserver.ServeStdio(mcp.New(client, Version, log)); err != nil {
		log.Error("stdio server stopped", "error", err)
		os.Exit(1)
	}
}
