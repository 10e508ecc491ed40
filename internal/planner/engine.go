package planner

import (
	"context"
	"errors"
	"time"

	"yatra/pkg/logger"
)

var ErrInvalidProfile = errors.New("planner: trip duration must be at least one day")

// Generator asks a language model for an itinerary and returns its raw text.
type Generator interface {
	GenerateItinerary(ctx context.Context, profile TripProfile, candidates []CandidateDestination) (string, error)
	Provider() string
	Model() string
}

// Engine runs one AI attempt and falls back to the deterministic builder on
// any failure along the way.
type Engine struct {
	gen Generator
	log *logger.Logger
	now func() time.Time
}

// NewEngine accepts a nil generator, in which case every call takes the
// basic path.
func NewEngine(gen Generator, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{gen: gen, log: log, now: time.Now}
}

func (e *Engine) Provider() string {
	if e.gen == nil {
		return "none"
	}
	return e.gen.Provider()
}

func (e *Engine) Model() string {
	if e.gen == nil {
		return string(MethodBasic)
	}
	return e.gen.Model()
}

func (e *Engine) Generate(ctx context.Context, profile TripProfile, candidates []CandidateDestination) (Result, error) {
	if profile.Duration < 1 {
		return Result{}, ErrInvalidProfile
	}
	start := e.now()

	if e.gen != nil {
		it, err := e.attemptAI(ctx, profile, candidates)
		if err == nil {
			Normalize(it, profile.TotalBudget)
			return Result{
				Itinerary:        *it,
				Method:           MethodAI,
				Confidence:       ConfidenceAI,
				ProcessingTimeMs: e.now().Sub(start).Milliseconds(),
			}, nil
		}
		e.log.Warn("ai itinerary generation failed, using basic algorithm",
			"provider", e.gen.Provider(),
			"stage", failureStage(err),
			"error", err,
		)
	}

	it := BuildBasicItinerary(profile, candidates)
	Normalize(&it, profile.TotalBudget)
	return Result{
		Itinerary:        it,
		Method:           MethodBasic,
		Confidence:       ConfidenceBasic,
		ProcessingTimeMs: e.now().Sub(start).Milliseconds(),
	}, nil
}

func (e *Engine) attemptAI(ctx context.Context, profile TripProfile, candidates []CandidateDestination) (*GeneratedItinerary, error) {
	raw, err := e.gen.GenerateItinerary(ctx, profile, candidates)
	if err != nil {
		return nil, &ExternalCallError{Provider: e.gen.Provider(), Err: err}
	}
	obj, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	if err := Validate(obj); err != nil {
		return nil, err
	}
	return Decode(obj)
}

func failureStage(err error) string {
	var (
		callErr    *ExternalCallError
		extractErr *ExtractionError
		val        *ValidationError
	)
	switch {
	case errors.As(err, &callErr):
		return "external_call"
	case errors.As(err, &extractErr):
		return "extract"
	case errors.As(err, &val):
		return "validate"
	default:
		return "unknown"
	}
}
