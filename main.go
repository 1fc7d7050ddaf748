/*
Builds the render targets described by a TOML file, creates a compatible
render pass and framebuffer for them and reports the framebuffer size.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/rendertargets/engine"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

func main() {
	configPath := flag.String("config", "rendertargets.toml", "path to the render target configuration")
	flag.Parse()

	e, err := engine.New(*configPath)
	if err != nil {
		os.Exit(1)
	}

	// signal context to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Initialize()
	if runErr == nil {
		runErr = e.Run(ctx)
	}
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
