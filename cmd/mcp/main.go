// Command mcp serves the résumé matcher as an MCP tool over stdio.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/app"
	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/mcptool"
)

var version = "dev"

func main() {
	cfg := config.Load()

	// stdout carries the protocol, so logs go to stderr.
	zlog, err := logger.NewStderr(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, err := app.NewCore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize analyzer", zap.Error(err))
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "resume-matcher",
		Version: version,
	}, nil)

	mcptool.Register(server, core.Analyzer)
	zlog.Info("starting mcp server", zap.String("similarity", core.Engine.Backend()))

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
