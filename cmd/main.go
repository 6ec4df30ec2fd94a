package main

import (
	"context"
	"os"

	"github.com/shenikar/citizen_report/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
