package main

import (
	"github.com/pfrederiksen/wimbledon-finals/internal/cli"
)

func main() {
	cli.Execute()
}
