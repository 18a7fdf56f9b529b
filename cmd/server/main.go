// Command server runs the estate payments and membership HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/filatei/btorestate/internal/app"
	"github.com/filatei/btorestate/internal/config"
)

func main() {
	version := flag.Bool("version", false, "print the build version and exit")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: server [-version]")
		config.Usage(os.Stderr)
	}
	flag.Parse()

	if *version {
		fmt.Println(app.BuildVersion())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
