package main

import (
	"flag"
	"fmt"
	"os"

	"mdl-compiler/internal/texture"
)

func main() {
	outputDir := flag.String("output", ".", "Output directory for processed textures")
	format := flag.String("format", "bmp", "Output format: bmp or webp")
	check := flag.Bool("check", false, "Only check CS 1.6 compatibility, do not convert")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: texprep [flags] <texture image>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *format != "bmp" && *format != "webp" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(1)
	}

	failed := 0
	for _, path := range flag.Args() {
		if *check {
			c, err := texture.CheckFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				failed++
				continue
			}
			verdict := "OK"
			if !c.Valid {
				verdict = "NOT OK: " + c.Reason
				failed++
			}
			fmt.Printf("%s: %dx%d %s\n", path, c.Width, c.Height, verdict)
			continue
		}

		p, err := texture.Process(path, *outputDir, *format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("Processed: %s -> %s\n", path, p.Path)
		fmt.Printf("  Size: %dx%d (from %dx%d)\n", p.Width, p.Height, p.SourceW, p.SourceH)
		fmt.Printf("  Colors: %d\n", p.Colors)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
