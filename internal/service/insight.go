package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nzoschke/healthmate/internal/ai"
	"github.com/nzoschke/healthmate/internal/flow"
	"github.com/nzoschke/healthmate/internal/markdown"
	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
)

// InsightService runs the BMI analysis and diet plan flows.
type InsightService struct {
	gateway     ai.Gateway
	bmiRepo     repository.BMIRepository
	profileRepo repository.ProfileRepository
	parser      *markdown.Parser
	temperature float64

	analysis *flow.Flow[model.Insight]
	dietPlan *flow.Flow[model.Insight]
}

func NewInsightService(
	gateway ai.Gateway,
	bmiRepo repository.BMIRepository,
	profileRepo repository.ProfileRepository,
	parser *markdown.Parser,
	temperature float64,
) *InsightService {
	return &InsightService{
		gateway:     gateway,
		bmiRepo:     bmiRepo,
		profileRepo: profileRepo,
		parser:      parser,
		temperature: temperature,
		analysis:    flow.New[model.Insight](),
		dietPlan:    flow.New[model.Insight](),
	}
}

// StartAnalysis explains one BMI sample. A missing sample is reported
// synchronously; everything after that lands in the flow state.
func (s *InsightService) StartAnalysis(ctx context.Context, sampleID int64) (<-chan struct{}, error) {
	sample, err := s.bmiRepo.ByID(sampleID)
	if err != nil {
		return nil, err
	}

	profile, err := s.activeProfile()
	if err != nil {
		return nil, err
	}

	req := ai.BMIAnalysisRequest(sample, profile, s.temperature)
	return s.analysis.Start(ctx, func(ctx context.Context) (model.Insight, error) {
		insight, err := s.generate(ctx, req)
		insight.SampleID = sample.ID
		return insight, err
	}), nil
}

func (s *InsightService) AnalysisState() flow.State[model.Insight] {
	return s.analysis.State()
}

// StartDietPlan builds a plan from the active profile and the latest sample.
// Both are optional.
func (s *InsightService) StartDietPlan(ctx context.Context) (<-chan struct{}, error) {
	profile, err := s.activeProfile()
	if err != nil {
		return nil, err
	}

	latest, err := s.bmiRepo.Latest()
	if errors.Is(err, repository.ErrBMISampleNotFound) {
		latest, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest bmi sample: %w", err)
	}

	req := ai.DietPlanRequest(profile, latest, s.temperature)
	return s.dietPlan.Start(ctx, func(ctx context.Context) (model.Insight, error) {
		return s.generate(ctx, req)
	}), nil
}

func (s *InsightService) DietPlanState() flow.State[model.Insight] {
	return s.dietPlan.State()
}

func (s *InsightService) activeProfile() (*model.Profile, error) {
	profile, err := s.profileRepo.Active()
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}
	return profile, nil
}

func (s *InsightService) generate(ctx context.Context, req ai.Request) (model.Insight, error) {
	text, err := s.gateway.Generate(ctx, req)
	if err != nil {
		return model.Insight{}, err
	}
	return model.Insight{Text: text, HTML: s.parser.Render(text)}, nil
}
