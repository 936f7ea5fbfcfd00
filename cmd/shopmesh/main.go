// Command shopmesh runs the UCP shopping MCP server over stdio (default),
// streamable HTTP or SSE.
//
// Usage:
//
//	shopmesh                                 # stdio transport
//	shopmesh -transport http -port 8000      # streamable HTTP with / health route
//	shopmesh -transport sse -port 8000       # SSE transport
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hupe1980/shopmesh"
	"github.com/hupe1980/shopmesh/logging"
)

func main() {
	var (
		transport = flag.String("transport", "stdio", "Transport mechanism: stdio, http or sse")
		host      = flag.String("host", "0.0.0.0", "Host for HTTP/SSE transport")
		port      = flag.Int("port", 8000, "Port for HTTP/SSE transport")
		logFormat = flag.String("log-format", "json", "Log format: json or text")
		debug     = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	level := logging.LogLevelInfo
	if *debug {
		level = logging.LogLevelDebug
	}
	logger := logging.NewSlogLogger(level, *logFormat, false)

	shop := shopmesh.New(func(o *shopmesh.Options) {
		o.Logger = logger
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("server.starting", "transport", *transport)

	switch *transport {
	case "stdio":
		if err := shop.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatalf("stdio server failed: %v", err)
		}
	case "http":
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return shop.MCPServer()
		}, nil)

		mux := http.NewServeMux()
		mux.Handle("/mcp", handler)
		// Health check route for load balancers.
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status":"ok"}`)
		})

		addr := fmt.Sprintf("%s:%d", *host, *port)
		logger.Info("server.listening", "addr", addr, "endpoint", "/mcp")
		if err := listenAndServe(ctx, addr, mux); err != nil {
			log.Fatalf("http server failed: %v", err)
		}
	case "sse":
		handler := mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
			return shop.MCPServer()
		})

		addr := fmt.Sprintf("%s:%d", *host, *port)
		logger.Info("server.listening", "addr", addr)
		if err := listenAndServe(ctx, addr, handler); err != nil {
			log.Fatalf("sse server failed: %v", err)
		}
	default:
		log.Fatalf("unknown transport %q (want stdio, http or sse)", *transport)
	}
}

// listenAndServe runs the HTTP server until the context is cancelled, then
// shuts down gracefully.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
