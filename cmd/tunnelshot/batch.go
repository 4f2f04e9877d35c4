package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"tunnelrunner/internal/scene"
	"tunnelrunner/internal/snapshot"
	"tunnelrunner/internal/texfile"
	"tunnelrunner/internal/tunnel"
)

// result holds the outcome of rendering one scene.
type result struct {
	Name  string
	Path  string
	Error error
}

// runBatch renders every scene in f into outDir using a worker pool. Each
// worker owns its renderer; the texture is shared read-only.
func runBatch(f *scene.File, outDir string, workers int, progress func(done, total int)) ([]result, error) {
	tex, err := loadTexture(f)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}
	if workers < 1 {
		workers = 1
	}

	total := len(f.Scenes)
	results := make([]result, total)
	var processed atomic.Int64

	done := make(chan struct{})
	if progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					progress(int(processed.Load()), total)
				}
			}
		}()
	}

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := tunnel.NewRenderer(f.Width, f.Height, tex, tunnel.RendererOptions{Ratio: f.Ratio})
			for idx := range jobs {
				s := f.Scenes[idx]
				if err != nil {
					results[idx] = result{Name: s.Name, Error: err}
				} else {
					results[idx] = renderScene(r, f, s, outDir)
				}
				processed.Add(1)
			}
		}()
	}
	for i := range f.Scenes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(done)
	return results, nil
}

func loadTexture(f *scene.File) (*tunnel.Texture, error) {
	if f.TextureFile != "" {
		return texfile.Load(f.TextureFile, f.TextureSize)
	}
	pattern, err := tunnel.ParsePattern(f.Texture)
	if err != nil {
		return nil, err
	}
	return tunnel.NewTexture(f.TextureSize, pattern)
}

func renderScene(r *tunnel.Renderer, f *scene.File, s scene.Scene, outDir string) result {
	res := result{Name: s.Name}
	view, err := s.View(f.Width, f.Height)
	if err != nil {
		res.Error = err
		return res
	}
	ext, err := s.OutputFormat()
	if err != nil {
		res.Error = err
		return res
	}
	if err := r.Render(view); err != nil {
		res.Error = err
		return res
	}
	res.Path = filepath.Join(outDir, s.Name+"."+ext)
	res.Error = writeImage(res.Path, snapshot.Scale(snapshot.Image(r.Surface()), f.Scale))
	return res
}

func writeImage(path string, img image.Image) error {
	format, err := snapshot.FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Encode(out, img, format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
