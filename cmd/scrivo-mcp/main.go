package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scrivo/internal/adapters/github"
	mcpadapter "scrivo/internal/adapters/mcp"
	"scrivo/internal/adapters/sqlite"
	"scrivo/internal/application"
	"scrivo/internal/config"
)

func main() {
	contentDir := flag.String("content-dir", config.ContentDir(), "repository directory holding the posts")
	flag.Parse()

	store, err := sqlite.Open(config.DatabasePath())
	if err != nil {
		log.Fatalf("scrivo-mcp: %v", err)
	}
	defer store.Close()

	rec, ok, err := store.Sessions().Load()
	if err != nil {
		log.Fatalf("scrivo-mcp: %v", err)
	}
	if !ok {
		log.Fatalf("scrivo-mcp: %v (run scrivo-cli login first)", application.ErrNoSession)
	}

	repo := github.NewClient(rec, *contentDir)

	mcpServer := server.NewMCPServer(
		"scrivo-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo)
	mcpadapter.RegisterWriteTools(mcpServer, repo, *contentDir)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("scrivo-mcp: %v", err)
	}
}
