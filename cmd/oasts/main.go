package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/erraggy/oasts/cmd/oasts/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// Cobra is configured to not print errors.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
