package main

import (
	"flag"
	"fmt"
	"os"

	"mdl-compiler/internal/mdl"
)

func main() {
	reportPath := flag.String("report", "", "Save a detailed report to this path")
	verbose := flag.Bool("v", false, "Print the full report to stdout")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: validate [flags] <model.mdl>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	res := mdl.ValidateFile(path)

	for _, e := range res.Errors {
		fmt.Printf("ERROR: %s\n", e)
	}
	for _, w := range res.Warnings {
		fmt.Printf("WARNING: %s\n", w)
	}

	if res.Valid {
		fmt.Printf("MDL file validation passed: %s\n", path)
	} else {
		fmt.Printf("MDL file validation failed: %s\n", path)
	}

	if *reportPath != "" {
		if err := mdl.WriteReport(*reportPath, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving report: %v\n", err)
		} else {
			fmt.Printf("Validation report saved to: %s\n", *reportPath)
		}
	}
	if *verbose {
		fmt.Println()
		fmt.Print(mdl.Report(res))
	}

	if !res.Valid {
		os.Exit(1)
	}
}
