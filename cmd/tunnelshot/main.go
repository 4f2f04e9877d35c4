// Command tunnelshot renders the scenes of a YAML file to still images.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"tunnelrunner/internal/scene"
)

func main() {
	scenesFile := flag.String("scenes", "", "Path to the scene YAML file")
	outDir := flag.String("out", "shots", "Output directory")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	flag.Parse()

	if *scenesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -scenes is required")
		flag.Usage()
		os.Exit(2)
	}
	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	f, err := scene.Load(*scenesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenes: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scenes: %d, Workers: %d, Size: %dx%d (x%d)\n", len(f.Scenes), *workers, f.Width, f.Height, f.Scale)
	start := time.Now()
	results, err := runBatch(f, *outDir, *workers, func(done, total int) {
		fmt.Printf("  [%d/%d]\n", done, total)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  %s: %v\n", r.Name, r.Error)
		}
	}
	fmt.Printf("Rendered %d/%d in %.1fs\n", len(results)-failed, len(results), time.Since(start).Seconds())
	if failed > 0 {
		os.Exit(1)
	}
}
