package main

import (
	"github.com/slopestore/slopestored/internal/cli"
)

func main() {
	cli.Execute()
}
