package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/lowaak/ttt-sim/internal/events"
	"github.com/lowaak/ttt-sim/internal/go_func_utils"
	"github.com/lowaak/ttt-sim/internal/paceline"
)

// FileKind identifies an exported artefact
type FileKind string

const (
	KindZWO FileKind = "zwo"
	KindPNG FileKind = "png"
)

// FileWritten is published once per file the runner writes
type FileWritten struct {
	Rider string
	Kind  FileKind
	Path  string
}

// Result lists the files written for one rider
type Result struct {
	Rider string
	Files []string
}

// RunnerOptions selects what a Runner writes and where
type RunnerOptions struct {
	OutputDir string
	ZWO       bool
	PNG       bool
	Chart     Chart
}

// Runner writes every rider's workout files, one goroutine per rider
type Runner struct {
	logger *log.Logger
	opts   RunnerOptions

	FileWritten *events.CallbackEvent[FileWritten]
}

// NewRunner creates a runner. It panics on a nil logger.
func NewRunner(logger *log.Logger, opts RunnerOptions) *Runner {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Runner{
		logger:      logger,
		opts:        opts,
		FileWritten: events.NewCallbackEvent[FileWritten](),
	}
}

// Run exports the workouts of every rider in plan. Results come back in
// roster order; failures from all riders are joined into one error.
func (r *Runner) Run(ctx context.Context, plan *paceline.PacelinePlan, workouts paceline.Workouts) ([]Result, error) {
	if plan == nil {
		return nil, errors.New("export: nil plan")
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	names := plan.RiderNames()
	stems := fileStems(names)
	results := make([]Result, len(names))
	errs := make([]error, len(names))

	r.logger.Printf("Runner: exporting %d riders to %s (zwo=%t png=%t)", len(names), r.opts.OutputDir, r.opts.ZWO, r.opts.PNG)

	var wg sync.WaitGroup
	for i, name := range names {
		go_func_utils.SafeGo(r.logger, &wg, func() {
			results[i].Rider = name
			errs[i] = go_func_utils.SafeCall(r.logger, func() error {
				files, err := r.exportRider(ctx, name, stems[i], workouts)
				results[i].Files = files
				return err
			})
		})
	}
	wg.Wait()

	err := errors.Join(errs...)
	if err != nil {
		r.logger.Printf("Runner: export finished with errors: %v", err)
	} else {
		r.logger.Printf("Runner: export finished")
	}
	return results, err
}

func (r *Runner) exportRider(ctx context.Context, name, stem string, workouts paceline.Workouts) ([]string, error) {
	steps, ok := workouts[name]
	if !ok {
		return nil, fmt.Errorf("rider %q: no workout", name)
	}

	var files []string
	write := func(kind FileKind, fileName string, render func() ([]byte, error)) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rider %q: %w", name, err)
		}
		data, err := render()
		if err != nil {
			return fmt.Errorf("rider %q: %w", name, err)
		}
		path := filepath.Join(r.opts.OutputDir, fileName)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("rider %q: writing %s: %w", name, kind, err)
		}
		r.logger.Printf("Runner: wrote %s", path)
		files = append(files, path)
		r.FileWritten.Notify(FileWritten{Rider: name, Kind: kind, Path: path})
		return nil
	}

	if r.opts.ZWO {
		if err := write(KindZWO, workoutFile(stem, "zwo"), func() ([]byte, error) {
			return ZWO(name, steps)
		}); err != nil {
			return files, err
		}
	}
	if r.opts.PNG {
		if err := write(KindPNG, workoutFile(stem, "png"), func() ([]byte, error) {
			return r.opts.Chart.Render(name, steps)
		}); err != nil {
			return files, err
		}
	}
	return files, nil
}
