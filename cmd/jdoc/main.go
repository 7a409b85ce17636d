package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/jacoelho/jdoc/internal/cli"
	"github.com/jacoelho/jdoc/internal/exit"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.Version = version
	c := cli.New(os.Stdin, os.Stdout, os.Stderr, afero.NewOsFs())

	r := exit.FromError(c.Execute(ctx, os.Args[1:]))
	r.Print()
	return r.ExitCode
}
