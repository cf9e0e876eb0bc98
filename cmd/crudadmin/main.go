package main

import (
	"os"

	"github.com/idilsaglam/crudadmin/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
