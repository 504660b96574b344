package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Buttje/mcp-fess/internal/adapters/driven/config/file"
	"github.com/Buttje/mcp-fess/internal/adapters/driving/mcp"
	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/logger"
)

// MCP protocol revisions announced in the logs.
const (
	protocolVersion     = "2025-03-26"
	protocolVersionCody = "2024-11-05"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

var (
	serveTransport string
	servePort      int
	serveDebug     bool
	serveCody      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for the configured knowledge domain.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --transport http to serve the streamable HTTP transport instead. The
listener binds to httpTransport.bindAddress and refuses non-loopback
addresses unless security.allowNonLocalhostBind is set.

Examples:
  # Stdio mode (default)
  mcp-fess serve

  # HTTP mode on port 8080
  mcp-fess serve --transport http --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "fess": {
        "command": "/path/to/mcp-fess",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", transportStdio, "transport mode (stdio or http)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (overrides config, default 3000)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "write a timestamped debug log")
	serveCmd.Flags().BoolVar(&serveCody, "cody", false, "announce MCP protocol version "+protocolVersionCody)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveTransport != transportStdio && serveTransport != transportHTTP {
		return fmt.Errorf("unknown transport %q (want stdio or http)", serveTransport)
	}

	a, err := loadApp()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	cfg := a.cfg

	logDir, err := file.LogDir()
	if err != nil {
		return err
	}
	logPath, err := logger.Init(logger.Options{
		Dir:        logDir,
		Level:      cfg.Logging.Level,
		Debug:      serveDebug,
		RetainDays: cfg.Logging.RetainDays,
		Console:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("initialising logging: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	proto := protocolVersion
	if serveCody {
		proto = protocolVersionCody
	}

	logger.Section("Startup")
	logger.Info("Starting MCP-Fess server")
	logger.Info("Config: %s", a.store.Path())
	logger.Info("Log file: %s", logPath)
	logger.Info("Domain: %s (ID: %s)", cfg.Domain.Name, cfg.Domain.ID)
	logger.Info("Fess URL: %s", cfg.FessBaseURL)
	logger.Info("Transport: %s", serveTransport)
	logger.Info("Protocol version: %s", proto)

	server, err := mcp.NewServer(cfg, a.ports())
	if err != nil {
		return err
	}

	if serveTransport == transportHTTP {
		// Fail before starting anything else.
		if _, err := server.Addr(servePort); err != nil {
			logger.Error("%v", err)
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.store.Watch(ctx, func(next domain.Config) {
			a.labels.Reload(next)
			if !serveDebug {
				if err := logger.SetLevel(next.Logging.Level); err != nil {
					logger.Warn("Ignoring log level change: %v", err)
				}
			}
			logger.Info("Label configuration reloaded")
		})
		if err != nil {
			// Serving continues without hot reload.
			logger.Warn("Config watcher stopped: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		if serveTransport == transportHTTP {
			return server.RunHTTP(ctx, servePort)
		}
		return server.Run(ctx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		logger.Error("Server stopped: %v", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
