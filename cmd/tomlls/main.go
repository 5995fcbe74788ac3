// Command tomlls is a diagnostics-only Language Server Protocol server
// for TOML documents, communicating via JSON-RPC over stdin/stdout.
// It is typically started automatically by an editor.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomlcore/tomlcore/internal/lsp"
)

func main() {
	server := lsp.NewServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		os.Exit(1)
	}
}
