package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nzoschke/healthmate/internal/ai"
	"github.com/nzoschke/healthmate/internal/flow"
	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/storage"
	"github.com/nzoschke/healthmate/internal/validation"
)

var (
	ErrNoScanDraft = errors.New("no food scan draft to confirm")
)

// MealInput is a manually logged meal. Timestamp 0 means now.
type MealInput struct {
	FoodName  string
	Calories  float64
	Protein   float64
	Carbs     float64
	Fat       float64
	MealType  string
	Timestamp int64
}

// ScanConfirmation turns the current draft into a meal. Empty or nil fields keep the draft's values.
type ScanConfirmation struct {
	ImageToken string
	MealType   string
	FoodName   string
	Nutrition  *model.Nutrition
}

type pendingImage struct {
	token    string
	mimeType string
	data     []byte
}

type MealService struct {
	repo        repository.MealRepository
	gateway     ai.Gateway
	labeler     ai.Labeler     // optional
	storage     storage.Storage // optional, scans keep no image without it
	temperature float64
	loc         *time.Location
	now         func() time.Time

	scan    *flow.Flow[model.MealDraft]
	mu      sync.Mutex
	pending *pendingImage
}

func NewMealService(
	repo repository.MealRepository,
	gateway ai.Gateway,
	labeler ai.Labeler,
	storage storage.Storage,
	temperature float64,
	loc *time.Location,
) *MealService {
	return &MealService{
		repo:        repo,
		gateway:     gateway,
		labeler:     labeler,
		storage:     storage,
		temperature: temperature,
		loc:         loc,
		now:         time.Now,
		scan:        flow.New[model.MealDraft](),
	}
}

func validateMeal(foodName, mealType string, n model.Nutrition, ts int64) error {
	err := validation.ValidateName("food_name", foodName)
	if err != nil {
		return asInvalid(err)
	}
	if !model.IsMealType(mealType) {
		return invalid("meal_type must be one of %s", strings.Join(model.MealTypes, ", "))
	}
	for field, v := range map[string]float64{"calories": n.Calories, "protein": n.Protein, "carbs": n.Carbs, "fat": n.Fat} {
		if v < 0 {
			return invalid("%s must not be negative", field)
		}
	}
	if ts < 0 {
		return invalid("timestamp must not be negative")
	}
	return nil
}

func (s *MealService) Log(in MealInput) (*model.MealLog, error) {
	n := model.Nutrition{Calories: in.Calories, Protein: in.Protein, Carbs: in.Carbs, Fat: in.Fat}
	err := validateMeal(in.FoodName, in.MealType, n, in.Timestamp)
	if err != nil {
		return nil, err
	}

	ts := in.Timestamp
	if ts == 0 {
		ts = nowMillis(s.now)
	}

	meal := &model.MealLog{
		FoodName:  strings.TrimSpace(in.FoodName),
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
		MealType:  in.MealType,
		Timestamp: ts,
	}

	err = s.repo.Create(meal)
	if err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	s.withImageURL(meal)
	return meal, nil
}

// Meals lists meals in the window, newest first.
func (s *MealService) Meals(w model.TimeWindow) ([]*model.MealLog, error) {
	if err := w.Validate(); err != nil {
		return nil, asInvalid(err)
	}

	meals, err := s.repo.Between(w)
	if err != nil {
		return nil, err
	}
	for _, m := range meals {
		s.withImageURL(m)
	}
	return meals, nil
}

// Summary totals the macros of one local calendar day.
func (s *MealService) Summary(date string) (*model.MealSummary, error) {
	day, err := model.ParseDateKey(date, s.loc)
	if err != nil {
		return nil, invalid("invalid date %q: expected YYYY-MM-DD", date)
	}

	meals, err := s.repo.Between(model.DayWindow(day, s.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to get meals: %w", err)
	}

	summary := &model.MealSummary{Date: date, MealCount: len(meals)}
	for _, m := range meals {
		summary.Totals.Add(m)
	}
	return summary, nil
}

// Today returns the local date key for now.
func (s *MealService) Today() string {
	return model.DateKey(s.now().In(s.loc))
}

func (s *MealService) Delete(ctx context.Context, id int64) error {
	meal, err := s.repo.ByID(id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(id)
	if err != nil {
		return err
	}

	if meal.ImagePath != nil {
		s.deleteImage(ctx, *meal.ImagePath)
	}
	return nil
}

func (s *MealService) DeleteAll(ctx context.Context) (int64, error) {
	paths, err := s.repo.ImagePaths()
	if err != nil {
		return 0, fmt.Errorf("failed to list meal images: %w", err)
	}

	n, err := s.repo.DeleteAll()
	if err != nil {
		return 0, fmt.Errorf("failed to delete meals: %w", err)
	}

	for _, p := range paths {
		s.deleteImage(ctx, p)
	}
	return n, nil
}

// Scan starts the food scan flow for an uploaded photo. An unreadable image
// ends the flow in its error state without calling the gateway.
func (s *MealService) Scan(ctx context.Context, data []byte) <-chan struct{} {
	mimeType, err := validation.DetectImage(data, validation.ImageConstraints)
	if err != nil {
		s.setPending(nil)
		s.scan.Fail(err)
		return closedChan()
	}

	img := &pendingImage{token: uuid.New().String(), mimeType: mimeType, data: data}
	s.setPending(img)

	return s.scan.Start(ctx, func(ctx context.Context) (model.MealDraft, error) {
		labels := s.labels(ctx, data)

		reply, err := s.gateway.Generate(ctx, ai.FoodScanRequest(&ai.Image{MIMEType: mimeType, Data: data}, labels, s.temperature))
		if err != nil {
			return model.MealDraft{}, err
		}

		name, n, err := ai.ParseFoodReply(reply)
		if err != nil {
			return model.MealDraft{}, err
		}

		return model.MealDraft{
			FoodName:   name,
			Nutrition:  n,
			Labels:     labels,
			ImageToken: img.token,
			RawReply:   reply,
		}, nil
	})
}

func (s *MealService) ScanState() flow.State[model.MealDraft] {
	return s.scan.State()
}

// ConfirmScan logs the current draft as a meal and stores its photo.
func (s *MealService) ConfirmScan(ctx context.Context, c ScanConfirmation) (*model.MealLog, error) {
	state := s.scan.State()
	if state.Status != flow.StatusSuccess || state.Value == nil {
		return nil, ErrNoScanDraft
	}
	draft := *state.Value
	if c.ImageToken != "" && c.ImageToken != draft.ImageToken {
		return nil, ErrNoScanDraft
	}

	name := draft.FoodName
	if strings.TrimSpace(c.FoodName) != "" {
		name = c.FoodName
	}
	n := draft.Nutrition
	if c.Nutrition != nil {
		n = *c.Nutrition
	}
	err := validateMeal(name, c.MealType, n, 0)
	if err != nil {
		return nil, err
	}

	meal := &model.MealLog{
		FoodName:  strings.TrimSpace(name),
		Calories:  n.Calories,
		Protein:   n.Protein,
		Carbs:     n.Carbs,
		Fat:       n.Fat,
		MealType:  c.MealType,
		Timestamp: nowMillis(s.now),
	}

	// The pending image is the claim on the draft; a concurrent confirm finds it gone.
	img := s.takePending(draft.ImageToken)
	if img == nil {
		return nil, ErrNoScanDraft
	}
	if s.storage != nil {
		path := fmt.Sprintf("meals/%s%s", uuid.New().String(), imageExt(img.mimeType))
		err := s.storage.Save(ctx, path, img.mimeType, img.data)
		if err != nil {
			// Keep the meal without its photo.
			slog.Error("failed to store meal image", "error", err, "path", path)
		} else {
			meal.ImagePath = &path
		}
	}

	err = s.repo.Create(meal)
	if err != nil {
		if meal.ImagePath != nil {
			s.deleteImage(ctx, *meal.ImagePath)
		}
		s.restorePending(img)
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	s.scan.Reset()
	s.withImageURL(meal)
	return meal, nil
}

func (s *MealService) labels(ctx context.Context, data []byte) []string {
	if s.labeler == nil {
		return nil
	}
	labels, err := s.labeler.Labels(ctx, data)
	if err != nil {
		slog.Warn("failed to label food image", "error", err)
		return nil
	}
	return labels
}

func (s *MealService) setPending(img *pendingImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = img
}

// restorePending puts back a claimed image unless a newer scan replaced it.
func (s *MealService) restorePending(img *pendingImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		s.pending = img
	}
}

func (s *MealService) takePending(token string) *pendingImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := s.pending
	if img == nil || img.token != token {
		return nil
	}
	s.pending = nil
	return img
}

func (s *MealService) withImageURL(m *model.MealLog) {
	if m.ImagePath != nil && s.storage != nil {
		m.ImageURL = s.storage.URL(*m.ImagePath)
	}
}

func (s *MealService) deleteImage(ctx context.Context, path string) {
	if s.storage == nil {
		return
	}
	err := s.storage.Delete(ctx, path)
	if err != nil {
		slog.Error("failed to delete meal image", "error", err, "path", path)
	}
}

func imageExt(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
