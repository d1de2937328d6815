package main

import (
	"flag"
	"fmt"
	"os"

	"mdl-compiler/internal/mdl"
)

// inspect dumps the structural facts of a model file: header fields, section
// counts, and the byte budget of each section. Useful when a file fails
// validation and the offsets need checking by hand.
func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inspect <model.mdl>\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res := mdl.Validate(data)
	info := res.Info

	fmt.Printf("File: %s (%d bytes)\n", path, len(data))
	if magic, ok := info["magic"].(string); ok {
		fmt.Printf("Magic: %q  Version: %v\n", magic, info["version"])
		fmt.Printf("Name: %q (header length %v)\n", info["model_name"], info["name_length"])
		fmt.Printf("Bounds: %v .. %v\n", info["bounds_min"], info["bounds_max"])
	}

	sections := []struct {
		key        string
		recordSize int
	}{
		{"vertex_count", mdl.VertexSize},
		{"triangle_count", mdl.TriangleSize},
		{"bone_count", mdl.BoneSize},
		{"sequence_count", mdl.SequenceSize},
		{"texture_count", mdl.TextureSize},
	}
	expected := mdl.HeaderSize
	haveCounts := false
	for _, s := range sections {
		if n, ok := info[s.key].(int); ok {
			haveCounts = true
			fmt.Printf("%-15s %6d  (%d bytes)\n", s.key+":", n, n*s.recordSize)
			expected += n * s.recordSize
		}
	}
	if haveCounts {
		fmt.Printf("Expected size: %d bytes, actual: %d bytes\n", expected, len(data))
	}

	for _, e := range res.Errors {
		fmt.Printf("ERROR: %s\n", e)
	}
	for _, w := range res.Warnings {
		fmt.Printf("WARNING: %s\n", w)
	}
}
