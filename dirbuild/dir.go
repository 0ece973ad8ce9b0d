// Package dirbuild interprets a mod directory and builds its language
// templates: it scans whitelisted asset files, parses each one, runs
// the patch generator against the configured path patterns, and writes
// the non-empty results under an output directory.
package dirbuild

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/neki-mods/neki-lang/config"
	"github.com/neki-mods/neki-lang/debug"
	"github.com/neki-mods/neki-lang/parse"
	"github.com/neki-mods/neki-lang/patchgen"
	"github.com/neki-mods/neki-lang/worker"

	"github.com/rs/zerolog/log"
)

type Build struct {
	// Input is the mod directory to scan.
	Input string
	// Output is the directory templates are written under, mirroring
	// Input's layout.
	Output string
	// TestOps wraps every replace operation in a [test, replace] batch.
	TestOps bool
	// Workers bounds per-file concurrency; 0 means NumCPU.
	Workers int

	Config *config.Config
}

type Stats struct {
	Scanned int
	Written int
	Elapsed time.Duration
}

// Run executes the whole pipeline. The first file that fails to read or
// parse aborts the run; per-file outputs are written in scan order.
func (b *Build) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	st, err := os.Stat(b.Input)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", b.Input)
	}

	files, err := b.scan()
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("files", len(files)).
		Dur("elapsed", time.Since(start)).
		Msg("files scanned")

	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool := worker.NewPool(workers, b.processFile)
	tasks := pool.Execute(ctx, files)
	for _, task := range tasks {
		if task.Err != nil {
			return nil, fmt.Errorf("%s: %w", task.Input.Path, task.Err)
		}
	}
	log.Info().
		Dur("elapsed", time.Since(start)).
		Msg("patch generation completed")

	stats := &Stats{Scanned: len(files)}
	for i, task := range tasks {
		if task.Result.IsEmpty() {
			continue
		}
		if err := b.write(files[i], task.Result); err != nil {
			return nil, err
		}
		stats.Written++
	}
	stats.Elapsed = time.Since(start)
	log.Info().
		Int("written", stats.Written).
		Dur("elapsed", stats.Elapsed).
		Msg("patch writing completed")
	return stats, nil
}

func (b *Build) processFile(_ context.Context, f InputFile) (patchgen.Data, error) {
	d, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	node, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	data := patchgen.Generate(f.IsPatch, node, f.Ext, b.Config.Patterns, b.TestOps)
	if debug.Gen() {
		debug.Logf("generated for %s:\n%v\n", f.Rel, data.Node())
	}
	return data, nil
}
