// Package main provides the minim CLI: gradient descent on a chosen
// objective from a chosen starting point, printing the final estimate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minim-ml/minim/autodiff"
	"github.com/minim-ml/minim/backend/cpu"
	"github.com/minim-ml/minim/minimize"
	"github.com/minim-ml/minim/objective"
	"github.com/minim-ml/minim/optim"
	"github.com/minim-ml/minim/tensor"
)

const version = "v0.1.0"

type backendT = *autodiff.Backend[*cpu.Backend]

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("minim %s\n", version)
		return
	}

	var (
		steps     = flag.Int("steps", 50000, "Maximum number of descent steps")
		lr        = flag.Float64("lr", 0.0001, "Learning rate")
		start     = flag.String("start", "2,1,10", "Starting point, comma-separated")
		target    = flag.String("target", "5,0,1", "Quadratic target point, comma-separated")
		objName   = flag.String("objective", "quadratic", "Objective: quadratic, sphere, rosenbrock")
		optName   = flag.String("optimizer", "sgd", "Optimizer: sgd, adam")
		momentum  = flag.Float64("momentum", 0, "SGD momentum factor")
		clip      = flag.Float64("clip", 0, "Max global gradient norm (0 disables clipping)")
		tolerance = flag.Float64("tol", 0, "Stop once the objective falls below this value (0 runs all steps)")
		every     = flag.Int("every", 0, "Log progress every N steps (default: steps/10)")
		debug     = flag.Bool("debug", false, "Enable debug logging (progress events)")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	x0, err := parseVector(*start)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -start")
	}

	backend := autodiff.New(cpu.New())

	obj, err := buildObjective(backend, *objName, *target, len(x0))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid objective")
	}

	x, err := tensor.FromSlice(x0, tensor.Shape{len(x0)}, backend)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid starting point")
	}
	param := optim.NewParameter("x", x)
	params := []*optim.Parameter[backendT]{param}

	var opt optim.Optimizer
	switch *optName {
	case "sgd":
		opt = optim.NewSGD(params, optim.SGDConfig{LR: *lr, Momentum: *momentum})
	case "adam":
		opt = optim.NewAdam(params, optim.AdamConfig{LR: *lr})
	default:
		log.Fatal().Str("optimizer", *optName).Msg("unknown optimizer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := minimize.Run(ctx, backend, obj, param, opt, minimize.Config{
		Steps:       *steps,
		MaxGradNorm: *clip,
		Tolerance:   *tolerance,
		LogEvery:    *every,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("minimization failed")
	}

	fmt.Printf("x = %v\n", formatVector(result.X))
	fmt.Printf("f(x) = %g\n", result.Value)
	fmt.Printf("steps = %d converged = %v\n", result.Steps, result.Converged)
}

// buildObjective constructs the requested objective on the given backend.
func buildObjective(backend backendT, name, target string, dim int) (objective.Objective[backendT], error) {
	switch name {
	case "quadratic":
		t, err := parseVector(target)
		if err != nil {
			return nil, fmt.Errorf("invalid -target: %w", err)
		}
		if len(t) != dim {
			return nil, fmt.Errorf("target has %d dimensions, start has %d", len(t), dim)
		}
		return objective.NewQuadratic(t, backend)
	case "sphere":
		return objective.NewSphere[backendT](), nil
	case "rosenbrock":
		if dim < 2 {
			return nil, fmt.Errorf("rosenbrock needs at least 2 dimensions")
		}
		return objective.NewRosenbrock[backendT](), nil
	default:
		return nil, fmt.Errorf("unknown objective %q", name)
	}
}

// parseVector parses a comma-separated list of floats.
func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vec := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		vec = append(vec, v)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("empty vector")
	}
	return vec, nil
}

// formatVector renders a float vector compactly.
func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
