package main

import (
	"os"

	"github.com/deskwatch/deskwatch/agentservice"
)

func main() {
	if err := agentservice.Run(); err != nil {
		os.Exit(1)
	}
}
