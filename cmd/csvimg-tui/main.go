package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/csv-image-downloader/internal/config"
	"github.com/handiism/csv-image-downloader/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (JSON or YAML)")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
