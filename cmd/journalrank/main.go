package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"journalrank/cmd/journalrank/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.ExecuteContext(ctx)
	cancel()
	os.Exit(code)
}
