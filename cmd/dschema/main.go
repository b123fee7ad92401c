package main

import (
	"os"

	"dschema/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
