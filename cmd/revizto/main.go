package main

import (
	"os"

	"github.com/hashicorp-forge/revizto/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
