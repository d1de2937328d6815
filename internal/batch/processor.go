package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mdl-compiler/internal/mdl"
	"mdl-compiler/internal/preview"
	"mdl-compiler/internal/qc"
	"mdl-compiler/internal/scene"
)

// Config holds shared settings for a batch run. Scenes are independent, so
// the pool needs no coordination beyond the work channel.
type Config struct {
	OutputDir    string
	Workers      int
	WriteQC      bool
	WritePreview bool
}

// Result holds the outcome of converting one scene file.
type Result struct {
	Scene    string
	Model    string
	Success  bool
	Valid    bool
	Warnings int
	Error    string
}

// Run converts all scene files using a worker pool.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	sceneChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, scenePath string) Result {
	res := Result{Scene: scenePath}

	s, err := scene.Load(scenePath)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	stem := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	if s.Name == "" {
		s.Name = stem
	}

	m, err := scene.Build(s)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	mdlPath := filepath.Join(cfg.OutputDir, stem+".mdl")
	if err := mdl.WriteFile(mdlPath, m); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Model = mdlPath

	// Validate what was just encoded so the manifest records quality facts.
	check := mdl.Validate(mdl.Encode(m))
	res.Valid = check.Valid
	res.Warnings = len(check.Warnings)

	if cfg.WriteQC {
		qcPath := strings.TrimSuffix(mdlPath, ".mdl") + ".qc"
		if err := qc.Write(qcPath, m, mdlPath); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	if cfg.WritePreview {
		jsonPath := strings.TrimSuffix(mdlPath, ".mdl") + ".json"
		if err := preview.Write(jsonPath, m); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Success = true
	return res
}
