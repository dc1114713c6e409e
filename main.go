package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/smartlibrary/internal/cli"
)

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, Version, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
