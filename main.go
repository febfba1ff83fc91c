package main

import (
	cmd "github.com/supercuration/supercon/cmd/supercon"
	"github.com/supercuration/supercon/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting supercon")
	cmd.Execute()
}
