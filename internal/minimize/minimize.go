// Package minimize drives gradient descent against an objective.
//
// Each step records the objective evaluation on the autodiff tape, walks the
// tape backward for the gradient, optionally clips the gradient norm, and
// lets the optimizer update the parameter in place.
package minimize

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minim-ml/minim/internal/autodiff"
	"github.com/minim-ml/minim/internal/objective"
	"github.com/minim-ml/minim/internal/optim"
	"github.com/minim-ml/minim/internal/tensor"
)

// Config controls a minimization run.
type Config struct {
	// Steps is the maximum number of descent steps (default: 1000).
	Steps int

	// MaxGradNorm clips the global gradient norm before each optimizer
	// step when > 0. 0 disables clipping.
	MaxGradNorm float64

	// GradNormType is the norm order used for clipping (default: 2).
	GradNormType float64

	// Tolerance stops the run early once the objective value falls to or
	// below it, when > 0. 0 runs all steps.
	Tolerance float64

	// LogEvery emits a progress event every N steps (default: Steps/10,
	// negative disables progress logging entirely).
	LogEvery int

	// Logger overrides the global zerolog logger when non-nil.
	Logger *zerolog.Logger
}

// Result reports the outcome of a minimization run.
type Result struct {
	RunID     uuid.UUID // Identifier tagged on every log event of the run
	X         []float64 // Final parameter estimate
	Value     float64   // Objective value at X
	Steps     int       // Descent steps actually taken
	Converged bool      // True when Tolerance stopped the run early
}

// Run minimizes obj starting from param's current value, updating param in
// place through opt. The backend's tape is cleared and re-recorded every
// step; any prior tape content is discarded.
//
// Run returns early with ctx.Err() when the context is cancelled between
// steps; the Result then carries the best-effort state at that point.
func Run[B tensor.Backend](
	ctx context.Context,
	backend *autodiff.Backend[B],
	obj objective.Objective[*autodiff.Backend[B]],
	param *optim.Parameter[*autodiff.Backend[B]],
	opt optim.Optimizer,
	cfg Config,
) (*Result, error) {
	if obj == nil || param == nil || opt == nil {
		return nil, fmt.Errorf("minimize: objective, parameter and optimizer are required")
	}
	if cfg.Steps <= 0 {
		cfg.Steps = 1000
	}
	if cfg.GradNormType == 0 {
		cfg.GradNormType = 2
	}
	logEvery := cfg.LogEvery
	if logEvery == 0 {
		logEvery = cfg.Steps / 10
		if logEvery == 0 {
			logEvery = 1
		}
	}

	runID := uuid.New()
	base := log.Logger
	if cfg.Logger != nil {
		base = *cfg.Logger
	}
	logger := base.With().
		Str("run", runID.String()).
		Str("objective", obj.Name()).
		Logger()

	logger.Info().
		Int("steps", cfg.Steps).
		Float64("lr", opt.LR()).
		Floats64("x0", param.Tensor().Data()).
		Msg("starting minimization")

	tape := backend.Tape()
	params := []*optim.Parameter[*autodiff.Backend[B]]{param}

	result := &Result{RunID: runID}
	for step := 1; step <= cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			finish(result, param, obj, step-1)
			logger.Warn().Int("step", step-1).Msg("minimization cancelled")
			return result, ctx.Err()
		default:
		}

		tape.Clear()
		tape.StartRecording()
		loss := obj.Eval(param.Tensor())
		grads := autodiff.Backward(loss, backend)
		tape.StopRecording()

		if cfg.MaxGradNorm > 0 {
			optim.ClipGradNorm(params, grads, cfg.MaxGradNorm, cfg.GradNormType)
		}

		opt.Step(grads)

		value := loss.Item()
		if logEvery > 0 && step%logEvery == 0 {
			logger.Debug().
				Int("step", step).
				Float64("value", value).
				Msg("progress")
		}

		if cfg.Tolerance > 0 && value <= cfg.Tolerance {
			finish(result, param, obj, step)
			result.Converged = true
			logger.Info().
				Int("step", step).
				Float64("value", result.Value).
				Msg("converged")
			return result, nil
		}
	}

	finish(result, param, obj, cfg.Steps)
	logger.Info().
		Float64("value", result.Value).
		Floats64("x", result.X).
		Msg("finished")
	return result, nil
}

// finish captures the current parameter state into the result.
func finish[B tensor.Backend](result *Result, param *optim.Parameter[B], obj objective.Objective[B], steps int) {
	result.X = append([]float64(nil), param.Tensor().Data()...)
	result.Value = obj.ValueAt(result.X)
	result.Steps = steps
}
