package main

import (
	"context"
	"os"

	"github.com/alexanderramin/effortplan/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	app := &cli.App{}
	defer app.Close()

	// the root command reports errors itself
	if err := cli.NewRootCmd(app).ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}
