// Command grinfi-mcp exposes the Grinfi CRM REST API as tools over the
// Model Context Protocol, either on stdio for a single local agent or as an
// HTTP server multiplexing concurrent client sessions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"

	"github.com/grinfi/grinfi-mcp/internal/grinfi"
	"github.com/grinfi/grinfi-mcp/internal/mcp"
)

var _ = godotenv.Load()

var (
	transport = flag.String("transport", "stdio", `MCP transport: "stdio" or "http"`)
	listen    = flag.String("listen", "", "address to listen on when -transport=http (default \":$PORT\" or \":3000\")")
	authMode  = flag.String("auth", string(mcp.AuthBearer), `HTTP auth variant: "bearer" (Authorization header) or "path" (/mcp/<secret>)`)
	baseURL   = flag.String("base-url", osenv.Value("GRINFI_BASE_URL", grinfi.DefaultBaseURL), "Grinfi API origin")
	unreadFan = flag.Int("unread-workers", 1, "concurrent contact lookups during the unread-conversation scan (1 = sequential)")
	verbose   = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()

	lvl := slog.LevelInfo
	if *verbose {
		lvl = slog.LevelDebug
	}
	// Logs go to stderr: on the stdio transport, stdout carries the protocol.
	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(lg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, lg); err != nil {
		lg.Error("grinfi-mcp failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, lg *slog.Logger) error {
	token := osenv.Secret("GRINFI_API_KEY", "")
	if token == "" {
		return errors.New("GRINFI_API_KEY is not set (put it in the environment or a .env file)")
	}

	crm, err := grinfi.New(token,
		grinfi.WithBaseURL(*baseURL),
		grinfi.WithLogger(lg),
		grinfi.WithUnreadWorkers(*unreadFan),
	)
	if err != nil {
		return err
	}

	srv := mcp.New(crm, mcp.WithLogger(lg))

	switch strings.ToLower(*transport) {
	case "stdio", "":
		return srv.ServeStdio(ctx)
	case "http":
		addr := *listen
		if addr == "" {
			addr = ":" + osenv.Value("PORT", "3000")
		}
		return srv.ServeHTTP(ctx, mcp.HTTPConfig{
			Addr:     addr,
			Secret:   osenv.Secret("MCP_AUTH_TOKEN", ""),
			AuthMode: mcp.AuthMode(strings.ToLower(*authMode)),
		})
	default:
		return fmt.Errorf("unknown transport %q (use \"stdio\" or \"http\")", *transport)
	}
}
