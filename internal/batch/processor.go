package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"pattern-renderer/internal/config"
	"pattern-renderer/internal/render"
)

// Config holds the settings shared by every job of a batch run.
type Config struct {
	Flags     config.Flags // applied to every job, like CLI overrides
	OutputDir string
	Workers   int
	Progress  time.Duration // interval between progress lines; 0 disables
}

// Result holds the outcome of processing one job.
type Result struct {
	Index   int
	Config  config.Config
	Render  render.Result
	Success bool
	Error   string
}

// LoadJobs reads a JSON array of render configs.
func LoadJobs(path string) ([]config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}

	var jobs []config.Config
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	return jobs, nil
}

// Run processes all jobs using a worker pool. Each job resolves
// single-threaded because the pool already keeps the cores busy.
func Run(cfg Config, jobs []config.Config) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
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
						fmt.Printf("  [%d/%d] %.1f images/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, idx, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, idx int, job config.Config) Result {
	flags := cfg.Flags
	flags.Workers = 1
	if job.OutputDir == "" {
		job.OutputDir = cfg.OutputDir
	}
	job.Workers = 0
	job.Resolve(flags)

	res := Result{Index: idx, Config: job}
	r, err := render.Run(job)
	if err != nil {
		res.Error = err.Error()
		render.Logger().Warn("job failed", "index", idx, "err", err)
		return res
	}
	res.Render = r
	res.Success = true
	return res
}
