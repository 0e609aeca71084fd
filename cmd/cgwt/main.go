package main

import (
	"os"

	"github.com/cgwt-sh/cgwt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
