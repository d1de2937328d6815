package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"mdl-compiler/internal/batch"
	"mdl-compiler/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	sceneDir := flag.String("scenes", "", "Directory of scene JSON files (default: current dir)")
	outputDir := flag.String("output", "", "Output directory for .mdl files (default: models)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	writeQC := flag.Bool("qc", false, "Generate QC scripts alongside models")
	writePreview := flag.Bool("preview", false, "Export preview JSON alongside models")
	testN := flag.Int("test", 0, "Convert only first N scenes for testing")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SceneDir:  *sceneDir,
		OutputDir: *outputDir,
		Workers:   *workers,
	})
	if *writeQC {
		cfg.WriteQC = true
	}
	if *writePreview {
		cfg.WritePreview = true
	}

	scenes, err := filepath.Glob(filepath.Join(cfg.SceneDir, "*.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(scenes)

	// Limit for testing
	if *testN > 0 && *testN < len(scenes) {
		scenes = scenes[:*testN]
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to convert.")
		os.Exit(0)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene JSON -> MDL batch converter\n")
	fmt.Printf("Scenes: %d, Workers: %d\n", len(scenes), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:    cfg.OutputDir,
		Workers:      cfg.Workers,
		WriteQC:      cfg.WriteQC,
		WritePreview: cfg.WritePreview,
	}, scenes)

	succeeded, failed, invalid := 0, 0, 0
	for _, r := range results {
		if !r.Success {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %s\n", r.Scene, r.Error)
			continue
		}
		succeeded++
		if !r.Valid {
			invalid++
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing manifest: %v\n", err)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs: %d converted, %d failed, %d invalid\n",
		time.Since(start).Seconds(), succeeded, failed, invalid)
	fmt.Printf("Manifest: %s\n", manifestPath)

	if failed > 0 {
		os.Exit(1)
	}
}
