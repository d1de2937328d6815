package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mdl-compiler/internal/mdl"
	"mdl-compiler/internal/preview"
	"mdl-compiler/internal/qc"
	"mdl-compiler/internal/scene"
)

func main() {
	createQC := flag.Bool("qc", false, "Generate a QC build script next to the output model")
	previewPath := flag.String("preview", "", "Export preview JSON to this path")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: convert [flags] <scene.json> <output.mdl>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	scenePath := flag.Arg(0)
	mdlPath := flag.Arg(1)

	if *verbose {
		fmt.Printf("Loading scene: %s\n", scenePath)
	}

	s, err := scene.Load(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	}

	m, err := scene.Build(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building model: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Model: %s\n", m.Name)
		fmt.Printf("Vertices: %d\n", len(m.Vertices))
		fmt.Printf("Triangles: %d\n", len(m.Triangles))
		fmt.Printf("Bones: %d\n", len(m.Bones))
		fmt.Printf("Sequences: %d\n", len(m.Sequences))
		fmt.Printf("Textures: %d\n", len(m.Textures))
		fmt.Printf("Writing MDL: %s\n", mdlPath)
	}

	if err := mdl.WriteFile(mdlPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing MDL: %v\n", err)
		os.Exit(1)
	}

	if *createQC {
		qcPath := strings.TrimSuffix(mdlPath, filepath.Ext(mdlPath)) + ".qc"
		if *verbose {
			fmt.Printf("Generating QC script: %s\n", qcPath)
		}
		if err := qc.Write(qcPath, m, mdlPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: QC generation: %v\n", err)
		}
	}

	if *previewPath != "" {
		if *verbose {
			fmt.Printf("Exporting preview JSON: %s\n", *previewPath)
		}
		if err := preview.Write(*previewPath, m); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: preview export: %v\n", err)
		}
	}

	fmt.Printf("Conversion completed: %s\n", mdlPath)
}
