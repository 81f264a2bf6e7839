package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"galab/internal/logging"
	"galab/internal/stats"
)

func main() {
	// Parse flags
	logPath := flag.String("log", "runs/original.jsonl", "path to a JSONL generation log")
	label := flag.String("label", "", "plot title (defaults to the log file name)")
	out := flag.String("out", "", "output image (defaults to the log path with .png)")
	hofPath := flag.String("hof", "", "optional hall-of-fame JSON to print alongside")
	flag.Parse()

	log, err := logging.LoadRecords(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading log: %v\n", err)
		os.Exit(1)
	}
	if len(log) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s has no generations\n", *logPath)
		os.Exit(1)
	}

	title := *label
	base := strings.TrimSuffix(*logPath, filepath.Ext(*logPath))
	if title == "" {
		title = filepath.Base(base)
	}
	outPath := *out
	if outPath == "" {
		outPath = base + ".png"
	}

	if err := stats.Plot(log, title, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering plot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d generations from %s\n", len(log), *logPath)
	fmt.Printf("Convergence plot: %s\n", outPath)

	if *hofPath != "" {
		hof, err := logging.LoadHallOfFame(*hofPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading hall of fame: %v\n", err)
			os.Exit(1)
		}
		logging.WriteReport(os.Stdout, title, log, hof.Champions)
	}
}
