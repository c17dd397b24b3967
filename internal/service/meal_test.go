package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nzoschke/healthmate/internal/flow"
	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/validation"
)

func newMealService(t *testing.T, gw *fakeGateway, store *memStorage) *MealService {
	t.Helper()
	svc := NewMealService(repository.NewMealRepository(newTestDB(t)), gw, nil, store, 0.2, time.UTC)
	return svc
}

func TestMealService_LogValidation(t *testing.T) {
	svc := newMealService(t, &fakeGateway{}, newMemStorage())

	var verr *ValidationError
	bad := []MealInput{
		{FoodName: "", MealType: model.MealTypeLunch},
		{FoodName: "toast", MealType: "brunch"},
		{FoodName: "toast", MealType: model.MealTypeBreakfast, Calories: -1},
		{FoodName: "toast", MealType: model.MealTypeLunch, Timestamp: -1},
	}
	for _, in := range bad {
		if _, err := svc.Log(in); !errors.As(err, &verr) {
			t.Errorf("Log(%+v) = %v, want ValidationError", in, err)
		}
	}
}

func TestMealService_Summary(t *testing.T) {
	svc := newMealService(t, &fakeGateway{}, newMemStorage())

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	meals := []MealInput{
		{FoodName: "late snack", Calories: 100, Protein: 1, MealType: model.MealTypeSnack, Timestamp: day.Add(-time.Millisecond).UnixMilli()},
		{FoodName: "oats", Calories: 300, Protein: 10, Carbs: 50, Fat: 5, MealType: model.MealTypeBreakfast, Timestamp: day.UnixMilli()},
		{FoodName: "soup", Calories: 250, Protein: 8, Carbs: 20, Fat: 10, MealType: model.MealTypeLunch, Timestamp: day.Add(12 * time.Hour).UnixMilli()},
		{FoodName: "cake", Calories: 400, MealType: model.MealTypeSnack, Timestamp: day.AddDate(0, 0, 1).UnixMilli()},
	}
	for _, m := range meals {
		if _, err := svc.Log(m); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	summary, err := svc.Summary("2026-03-10")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := model.Nutrition{Calories: 550, Protein: 18, Carbs: 70, Fat: 15}
	if summary.MealCount != 2 || summary.Totals != want {
		t.Errorf("summary = %+v, want 2 meals %+v", summary, want)
	}

	if _, err := svc.Summary("March 10"); err == nil {
		t.Error("Summary accepted a bad date")
	}
}

func TestMealService_ScanAndConfirm(t *testing.T) {
	gw := &fakeGateway{reply: "```json\n{\"food_name\":\"Pancakes\",\"calories\":520,\"protein\":12,\"carbs\":80,\"fat\":16}\n```"}
	store := newMemStorage()
	svc := newMealService(t, gw, store)

	if _, err := svc.ConfirmScan(context.Background(), ScanConfirmation{MealType: model.MealTypeBreakfast}); !errors.Is(err, ErrNoScanDraft) {
		t.Errorf("confirm without draft = %v", err)
	}

	wait(t, svc.Scan(context.Background(), pngImage(t)))

	s := svc.ScanState()
	if s.Status != flow.StatusSuccess {
		t.Fatalf("scan status = %q (%s)", s.Status, s.Error)
	}
	draft := *s.Value
	if draft.FoodName != "Pancakes" || draft.Nutrition.Calories != 520 || draft.ImageToken == "" {
		t.Errorf("draft = %+v", draft)
	}
	if gw.requests[0].Image == nil || gw.requests[0].Image.MIMEType != "image/png" {
		t.Errorf("gateway image = %+v", gw.requests[0].Image)
	}

	if _, err := svc.ConfirmScan(context.Background(), ScanConfirmation{ImageToken: "stale", MealType: model.MealTypeBreakfast}); !errors.Is(err, ErrNoScanDraft) {
		t.Errorf("confirm with stale token = %v", err)
	}

	meal, err := svc.ConfirmScan(context.Background(), ScanConfirmation{
		ImageToken: draft.ImageToken,
		MealType:   model.MealTypeBreakfast,
		FoodName:   "Blueberry pancakes",
	})
	if err != nil {
		t.Fatalf("ConfirmScan: %v", err)
	}
	if meal.FoodName != "Blueberry pancakes" || meal.Calories != 520 || meal.ImagePath == nil {
		t.Errorf("meal = %+v", meal)
	}
	if meal.ImageURL != "https://images.test/"+*meal.ImagePath || store.len() != 1 {
		t.Errorf("image url = %q, stored = %d", meal.ImageURL, store.len())
	}
	if svc.ScanState().Status != flow.StatusIdle {
		t.Error("scan flow not reset after confirm")
	}

	if err := svc.Delete(context.Background(), meal.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.len() != 0 {
		t.Error("image not removed with meal")
	}
}

func TestMealService_ConcurrentConfirmLogsOnce(t *testing.T) {
	gw := &fakeGateway{reply: `{"food_name":"Ramen","calories":600,"protein":20,"carbs":70,"fat":22}`}
	store := newMemStorage()
	svc := newMealService(t, gw, store)

	wait(t, svc.Scan(context.Background(), pngImage(t)))
	if s := svc.ScanState(); s.Status != flow.StatusSuccess {
		t.Fatalf("scan status = %q (%s)", s.Status, s.Error)
	}

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.ConfirmScan(context.Background(), ScanConfirmation{MealType: model.MealTypeDinner})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, ErrNoScanDraft):
			t.Errorf("ConfirmScan = %v, want ErrNoScanDraft", err)
		}
	}
	if ok != 1 {
		t.Errorf("%d confirms succeeded, want 1", ok)
	}

	meals, err := svc.Meals(model.FullTimeWindow())
	if err != nil {
		t.Fatalf("Meals: %v", err)
	}
	if len(meals) != 1 || store.len() != 1 {
		t.Errorf("meals = %d, stored images = %d, want 1 each", len(meals), store.len())
	}
}

func TestMealService_ScanUnreadableImage(t *testing.T) {
	gw := &fakeGateway{reply: "{}"}
	svc := newMealService(t, gw, newMemStorage())

	wait(t, svc.Scan(context.Background(), []byte("definitely not a photo")))

	s := svc.ScanState()
	if s.Status != flow.StatusError || s.Error != validation.ErrUnreadableImage.Error() {
		t.Errorf("state = %+v", s)
	}
	if gw.calls() != 0 {
		t.Errorf("gateway called %d times", gw.calls())
	}
}

func TestMealService_ScanUnparseableReply(t *testing.T) {
	gw := &fakeGateway{reply: "Looks tasty!"}
	svc := newMealService(t, gw, newMemStorage())

	wait(t, svc.Scan(context.Background(), pngImage(t)))

	if s := svc.ScanState(); s.Status != flow.StatusError {
		t.Errorf("status = %q, want error", s.Status)
	}
}
