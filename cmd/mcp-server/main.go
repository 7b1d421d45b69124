// jobboard-mcp-server
//
// Exposes the job board over MCP (stdio): search_jobs, job_stats and
// list_locations. Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"ldexchange/jobboard/internal/config"
	"ldexchange/jobboard/internal/mcptools"
	"ldexchange/jobboard/internal/store"
	"ldexchange/jobboard/internal/view"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[mcp-server] Config error: %v", err)
	}

	var querier store.Querier
	st, err := store.Open(context.Background(), cfg.DatabaseURL, cfg.SQLitePath)
	switch {
	case errors.Is(err, store.ErrUnavailable):
		log.Printf("[mcp-server] %v; tools will report it", err)
	case err != nil:
		log.Fatalf("[mcp-server] Store: %v", err)
	default:
		defer st.Close()
		querier = st
	}

	s := server.NewMCPServer("ld-jobboard", version)
	mcptools.New(view.NewService(querier, view.NewMemoryCache(view.DefaultTTL))).Register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
