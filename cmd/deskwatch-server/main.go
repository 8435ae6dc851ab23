package main

import (
	"os"

	"github.com/deskwatch/deskwatch/telemetryservice"
)

func main() {
	if err := telemetryservice.Run(); err != nil {
		os.Exit(1)
	}
}
