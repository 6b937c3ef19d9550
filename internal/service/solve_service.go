package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "go-lens-solver/internal/errors"
	"go-lens-solver/internal/factory"
	"go-lens-solver/internal/observer"
	"go-lens-solver/internal/repository"
	"go-lens-solver/internal/solver"
	"go-lens-solver/internal/strategy"
	"go-lens-solver/pkg/models"
	"go-lens-solver/pkg/validation"
)

// SolveService defines the request-facing solve operations
type SolveService interface {
	Solve(ctx context.Context, req models.SolveRequest) (*models.SolveResponse, error)
	SolveBatch(ctx context.Context, req models.SolveBatchRequest) (*models.SolveBatchResponse, error)
	Models() []string
	Close() error
}

// solveService wires the lens-model repository, per-model solvers, solve
// strategies and result validation behind one request boundary. Solvers are
// cached per model name: the underlying deflection fields are stateless, so
// one solver instance serves every request while the parameters vary per
// call.
type solveService struct {
	repo            repository.LensModelRepository
	solverFactory   factory.SolverFactory
	seederType      factory.SeederType
	presets         map[string]solver.Options
	events          observer.Subject
	maxBatchSources int

	mu      sync.Mutex
	solvers map[string]solver.LensSolver
}

// NewSolveService creates a new solve service.
func NewSolveService(
	repo repository.LensModelRepository,
	solverFactory factory.SolverFactory,
	seederType factory.SeederType,
	presets map[string]solver.Options,
	events observer.Subject,
	maxBatchSources int,
) SolveService {
	return &solveService{
		repo:            repo,
		solverFactory:   solverFactory,
		seederType:      seederType,
		presets:         presets,
		events:          events,
		maxBatchSources: maxBatchSources,
		solvers:         make(map[string]solver.LensSolver),
	}
}

// Solve locates all lensed images of one source position.
func (s *solveService) Solve(ctx context.Context, req models.SolveRequest) (*models.SolveResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("request cancelled before solving", err)
	}

	resolved, opts, ls, err := s.prepare(ctx, requestID, req.Model, req.Parameters, req.Mode, req.Options, 1)
	if err != nil {
		return nil, err
	}

	result, err := ls.Solve(req.Source, resolved.Params, opts)
	if err != nil {
		s.notify(ctx, observer.SolveEvent{
			EventType:    observer.SolveFailed,
			Timestamp:    time.Now(),
			RequestID:    requestID,
			Model:        req.Model,
			SourceCount:  1,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	warnings := s.validate(opts, result)
	s.notifyResult(ctx, requestID, req.Model, 1, result.ImageCount, result.Incomplete, time.Since(start))

	return &models.SolveResponse{
		RequestID:         requestID,
		Model:             req.Model,
		Result:            result,
		Warnings:          warnings,
		ProcessingTimeSec: time.Since(start).Seconds(),
	}, nil
}

// SolveBatch locates the images of many source positions.
func (s *solveService) SolveBatch(ctx context.Context, req models.SolveBatchRequest) (*models.SolveBatchResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("request cancelled before solving", err)
	}
	if len(req.Sources) == 0 {
		return nil, apperrors.NewValidationError("batch request must contain at least one source", nil)
	}
	if len(req.Sources) > s.maxBatchSources {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("batch exceeds the maximum of %d sources", s.maxBatchSources), nil)
	}
	if req.ParameterSets != nil && len(req.ParameterSets) != len(req.Sources) {
		return nil, apperrors.NewValidationError("parameter_sets length must match sources length", nil)
	}

	resolved, opts, ls, err := s.prepare(ctx, requestID, req.Model, firstParams(req), req.Mode, req.Options, len(req.Sources))
	if err != nil {
		return nil, err
	}

	var batch models.BatchResult
	if req.ParameterSets != nil {
		paramsList := make([]models.LensParameters, len(req.ParameterSets))
		for i, raw := range req.ParameterSets {
			r, err := s.repo.Resolve(req.Model, raw)
			if err != nil {
				return nil, s.wrapResolveError(ctx, requestID, req.Model, len(req.Sources), err)
			}
			paramsList[i] = r.Params
		}
		batch, err = ls.SolveBatchVaried(req.Sources, paramsList, opts)
	} else {
		batch, err = ls.SolveBatch(req.Sources, resolved.Params, opts)
	}
	if err != nil {
		s.notify(ctx, observer.SolveEvent{
			EventType:    observer.SolveFailed,
			Timestamp:    time.Now(),
			RequestID:    requestID,
			Model:        req.Model,
			SourceCount:  len(req.Sources),
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	var warnings []string
	totalImages := 0
	anyIncomplete := false
	for _, result := range batch.Results {
		totalImages += result.ImageCount
		anyIncomplete = anyIncomplete || result.Incomplete
		warnings = append(warnings, s.validate(opts, result)...)
	}
	s.notifyResult(ctx, requestID, req.Model, len(req.Sources), totalImages, anyIncomplete, time.Since(start))

	return &models.SolveBatchResponse{
		RequestID:         requestID,
		Model:             req.Model,
		SourceCount:       len(req.Sources),
		Results:           batch,
		Warnings:          warnings,
		ProcessingTimeSec: time.Since(start).Seconds(),
	}, nil
}

// Models lists the lens models this service can solve.
func (s *solveService) Models() []string {
	return s.repo.Models()
}

// Close shuts down all cached solvers.
func (s *solveService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, ls := range s.solvers {
		_ = ls.Close()
		delete(s.solvers, name)
	}
	return nil
}

// prepare resolves the lens model, the solve options and the solver; it
// also emits the solve_started event.
func (s *solveService) prepare(ctx context.Context, requestID, model string, params map[string]float64, mode string, override *models.SolveOptionsOverride, sourceCount int) (*repository.ResolvedLens, solver.Options, solver.LensSolver, error) {
	resolved, err := s.repo.Resolve(model, params)
	if err != nil {
		return nil, solver.Options{}, nil, s.wrapResolveError(ctx, requestID, model, sourceCount, err)
	}

	opts, err := s.optionsFor(mode, override)
	if err != nil {
		return nil, solver.Options{}, nil, err
	}

	ls, err := s.solverFor(model, resolved)
	if err != nil {
		return nil, solver.Options{}, nil, err
	}

	s.notify(ctx, observer.SolveEvent{
		EventType:   observer.SolveStarted,
		Timestamp:   time.Now(),
		RequestID:   requestID,
		Model:       model,
		SourceCount: sourceCount,
	})
	return resolved, opts, ls, nil
}

// optionsFor builds solver options from the requested mode and per-request
// overrides. Configured presets take precedence over the built-in
// strategies of the same name.
func (s *solveService) optionsFor(mode string, override *models.SolveOptionsOverride) (solver.Options, error) {
	var sctx *strategy.SolveContext
	if preset, ok := s.presets[mode]; ok {
		sctx = strategy.NewSolveContext(strategy.NewPresetSolveStrategy(mode, preset))
	} else {
		switch mode {
		case "", "accurate":
			sctx = strategy.NewSolveContext(strategy.NewAccurateSolveStrategy())
		case "fast":
			sctx = strategy.NewSolveContext(strategy.NewFastSolveStrategy())
		case "dense":
			sctx = strategy.NewSolveContext(strategy.NewDenseSolveStrategy())
		default:
			return solver.Options{}, apperrors.NewValidationError(
				fmt.Sprintf("unknown solve mode %q", mode), nil)
		}
	}

	opts := sctx.CurrentOptions()
	if override != nil {
		opts = applyOverride(opts, override)
	}
	if err := opts.Validate(); err != nil {
		return solver.Options{}, err
	}
	return opts, nil
}

// solverFor returns the cached solver for a model, creating it on first use.
func (s *solveService) solverFor(model string, resolved *repository.ResolvedLens) (solver.LensSolver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ls, ok := s.solvers[model]; ok {
		return ls, nil
	}
	ls, err := s.solverFactory.CreateSolver(resolved.Field, s.seederType)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create solver", err)
	}
	s.solvers[model] = ls
	return ls, nil
}

// validate checks the result invariants and converts issues to warnings.
func (s *solveService) validate(opts solver.Options, result models.SolveResult) []string {
	validator := validation.NewResultValidatorWithThresholds(validation.ResultThresholds{
		ConvergenceTol: opts.ConvergenceTol,
		MergeDistance:  opts.MergeDistance,
	})
	return validator.ConvertIssuesToMessages(validator.ValidateResult(result))
}

func (s *solveService) wrapResolveError(ctx context.Context, requestID, model string, sourceCount int, err error) error {
	var appErr error
	switch {
	case errors.Is(err, repository.ErrUnknownModel):
		appErr = apperrors.NewNotFoundError("unknown lens model", err)
	case errors.Is(err, repository.ErrMissingParameter), errors.Is(err, repository.ErrInvalidParameter):
		appErr = apperrors.NewValidationError("invalid lens model parameters", err)
	default:
		appErr = apperrors.NewInternalError("failed to resolve lens model", err)
	}
	s.notify(ctx, observer.SolveEvent{
		EventType:    observer.SolveFailed,
		Timestamp:    time.Now(),
		RequestID:    requestID,
		Model:        model,
		SourceCount:  sourceCount,
		ErrorMessage: appErr.Error(),
	})
	return appErr
}

func (s *solveService) notifyResult(ctx context.Context, requestID, model string, sourceCount, imageCount int, incomplete bool, elapsed time.Duration) {
	eventType := observer.SolveCompleted
	if incomplete {
		eventType = observer.SolveIncomplete
	}
	s.notify(ctx, observer.SolveEvent{
		EventType:      eventType,
		Timestamp:      time.Now(),
		RequestID:      requestID,
		Model:          model,
		SourceCount:    sourceCount,
		ImageCount:     imageCount,
		Incomplete:     incomplete,
		ProcessingTime: elapsed,
		Success:        true,
	})
}

func (s *solveService) notify(ctx context.Context, event observer.SolveEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}

// applyOverride overlays per-request option overrides onto base options.
func applyOverride(opts solver.Options, o *models.SolveOptionsOverride) solver.Options {
	if o.GridResolution != nil {
		opts.GridResolution = *o.GridResolution
	}
	if o.BoundingHalfWidth != nil {
		opts.BoundingHalfWidth = *o.BoundingHalfWidth
	}
	if o.Jitter != nil {
		opts.Jitter = *o.Jitter
	}
	if o.MaxIterations != nil {
		opts.MaxIterations = *o.MaxIterations
	}
	if o.ConvergenceTol != nil {
		opts.ConvergenceTol = *o.ConvergenceTol
	}
	if o.MergeDistance != nil {
		opts.MergeDistance = *o.MergeDistance
	}
	if o.DampingThreshold != nil {
		opts.DampingThreshold = *o.DampingThreshold
	}
	if o.RandomSeed != nil {
		opts.RandomSeed = *o.RandomSeed
	}
	return opts
}

// firstParams picks the parameter map used for model resolution in a batch:
// the shared map when parameters are fixed, otherwise the first per-source
// set (used only to verify the model resolves; per-source sets are resolved
// individually afterwards).
func firstParams(req models.SolveBatchRequest) map[string]float64 {
	if req.Parameters != nil {
		return req.Parameters
	}
	if len(req.ParameterSets) > 0 {
		return req.ParameterSets[0]
	}
	return nil
}
