package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/db"
	"github.com/nzoschke/healthmate/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func TestBMIRepository(t *testing.T) {
	repo := NewBMIRepository(newTestDB(t))

	for _, ts := range []int64{1000, 2000, 3000} {
		s := &model.BMISample{WeightKg: 70, HeightCm: 175, BMI: 22.9, Category: model.BMICategoryNormal, Timestamp: ts}
		if err := repo.Create(s); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if s.ID == 0 {
			t.Fatal("Create did not assign an id")
		}
	}

	got, err := repo.Between(model.TimeWindow{Start: 1000, End: 2000})
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if len(got) != 2 || got[0].Timestamp != 2000 || got[1].Timestamp != 1000 {
		t.Errorf("Between = %v, want [2000 1000]", timestamps(got))
	}

	latest, err := repo.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Timestamp != 3000 {
		t.Errorf("Latest timestamp = %d, want 3000", latest.Timestamp)
	}

	if err := repo.Delete(latest.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(latest.ID); !errors.Is(err, ErrBMISampleNotFound) {
		t.Errorf("Delete twice = %v, want ErrBMISampleNotFound", err)
	}

	n, err := repo.DeleteAll()
	if err != nil || n != 2 {
		t.Errorf("DeleteAll = %d, %v; want 2", n, err)
	}
	if _, err := repo.Latest(); !errors.Is(err, ErrBMISampleNotFound) {
		t.Errorf("Latest on empty = %v, want ErrBMISampleNotFound", err)
	}
}

func timestamps(samples []*model.BMISample) []int64 {
	out := make([]int64, len(samples))
	for i, s := range samples {
		out[i] = s.Timestamp
	}
	return out
}

func TestMealRepository_BetweenIsInclusive(t *testing.T) {
	repo := NewMealRepository(newTestDB(t))

	img := "meals/a.jpg"
	meals := []*model.MealLog{
		{FoodName: "oats", Calories: 300, MealType: model.MealTypeBreakfast, Timestamp: 100},
		{FoodName: "soup", Calories: 250, MealType: model.MealTypeLunch, Timestamp: 200, ImagePath: &img},
		{FoodName: "pasta", Calories: 700, MealType: model.MealTypeDinner, Timestamp: 300},
	}
	for _, m := range meals {
		if err := repo.Create(m); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.Between(model.TimeWindow{Start: 200, End: 200})
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if len(got) != 1 || got[0].FoodName != "soup" {
		t.Fatalf("Between(200,200) = %+v, want soup", got)
	}
	if got[0].ImagePath == nil || *got[0].ImagePath != img {
		t.Errorf("image path = %v", got[0].ImagePath)
	}

	all, err := repo.Between(model.FullTimeWindow())
	if err != nil {
		t.Fatalf("Between full: %v", err)
	}
	if len(all) != 3 || all[0].FoodName != "pasta" || all[2].FoodName != "oats" {
		t.Errorf("Between full not newest-first: %+v", all)
	}

	paths, err := repo.ImagePaths()
	if err != nil || len(paths) != 1 || paths[0] != img {
		t.Errorf("ImagePaths = %v, %v", paths, err)
	}

	if _, err := repo.ByID(999); !errors.Is(err, ErrMealNotFound) {
		t.Errorf("ByID missing = %v", err)
	}
}

func TestHabitCompletionRepository_Toggle(t *testing.T) {
	database := newTestDB(t)
	habits := NewHabitRepository(database)
	completions := NewHabitCompletionRepository(database)

	habit := &model.Habit{Name: "Walk", Frequency: model.HabitFrequencyDaily, TargetDaysPerWeek: 7, IsActive: true, CreatedAt: 1}
	if err := habits.Create(habit); err != nil {
		t.Fatalf("Create habit: %v", err)
	}

	c := &model.HabitCompletion{HabitID: habit.ID, Date: "2026-03-10", CompletedAt: 5}
	done, err := completions.Toggle(c)
	if err != nil || !done {
		t.Fatalf("Toggle on = %v, %v", done, err)
	}
	ok, err := completions.Completed(habit.ID, "2026-03-10")
	if err != nil || !ok {
		t.Errorf("Completed after toggle on = %v, %v", ok, err)
	}

	done, err = completions.Toggle(c)
	if err != nil || done {
		t.Fatalf("Toggle off = %v, %v", done, err)
	}
	ok, err = completions.Completed(habit.ID, "2026-03-10")
	if err != nil || ok {
		t.Errorf("Completed after toggle off = %v, %v", ok, err)
	}
}

func TestHabitCompletionRepository_UniquePerDay(t *testing.T) {
	database := newTestDB(t)
	habits := NewHabitRepository(database)

	habit := &model.Habit{Name: "Read", Frequency: model.HabitFrequencyDaily, TargetDaysPerWeek: 7, IsActive: true}
	if err := habits.Create(habit); err != nil {
		t.Fatalf("Create habit: %v", err)
	}

	insert := `INSERT INTO habit_completions (habit_id, date, completed_at, note) VALUES ($1, $2, $3, '')`
	if _, err := database.Exec(insert, habit.ID, "2026-03-10", 1); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := database.Exec(insert, habit.ID, "2026-03-10", 2); err == nil {
		t.Error("second insert for the same day succeeded")
	}
}

func TestHabitCompletionRepository_BetweenAndCascade(t *testing.T) {
	database := newTestDB(t)
	habits := NewHabitRepository(database)
	completions := NewHabitCompletionRepository(database)

	habit := &model.Habit{Name: "Stretch", Frequency: model.HabitFrequencyWeekly, TargetDaysPerWeek: 3, IsActive: true}
	if err := habits.Create(habit); err != nil {
		t.Fatalf("Create habit: %v", err)
	}
	for _, d := range []string{"2026-03-12", "2026-03-10", "2026-03-11", "2026-03-20"} {
		if _, err := completions.Toggle(&model.HabitCompletion{HabitID: habit.ID, Date: d}); err != nil {
			t.Fatalf("Toggle %s: %v", d, err)
		}
	}

	got, err := completions.Between(habit.ID, model.DateWindow{Start: "2026-03-10", End: "2026-03-12"})
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if len(got) != 3 || got[0].Date != "2026-03-10" || got[2].Date != "2026-03-12" {
		t.Errorf("Between not oldest-first: %+v", got)
	}

	n, err := completions.Count(habit.ID, model.FullDateWindow())
	if err != nil || n != 4 {
		t.Errorf("Count = %d, %v; want 4", n, err)
	}

	if err := habits.Delete(habit.ID); err != nil {
		t.Fatalf("Delete habit: %v", err)
	}
	n, err = completions.Count(habit.ID, model.FullDateWindow())
	if err != nil || n != 0 {
		t.Errorf("Count after delete = %d, %v; want 0", n, err)
	}
}

func TestHabitRepository_Deactivate(t *testing.T) {
	repo := NewHabitRepository(newTestDB(t))

	a := &model.Habit{Name: "A", Frequency: model.HabitFrequencyDaily, TargetDaysPerWeek: 7, IsActive: true, CreatedAt: 1}
	b := &model.Habit{Name: "B", Frequency: model.HabitFrequencyDaily, TargetDaysPerWeek: 7, IsActive: true, CreatedAt: 2}
	for _, h := range []*model.Habit{a, b} {
		if err := repo.Create(h); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := repo.Deactivate(a.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	active, err := repo.Habits(true)
	if err != nil || len(active) != 1 || active[0].ID != b.ID {
		t.Errorf("active habits = %+v, %v", active, err)
	}
	all, err := repo.Habits(false)
	if err != nil || len(all) != 2 {
		t.Errorf("all habits = %d, %v", len(all), err)
	}
	if err := repo.Deactivate(999); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("Deactivate missing = %v", err)
	}
}

func TestTodoRepository_Ordering(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	due := func(v int64) *int64 { return &v }
	todos := []*model.Todo{
		{Title: "low", Priority: model.PriorityLow, CreatedAt: 1},
		{Title: "done-high", Priority: model.PriorityHigh, IsCompleted: true, CreatedAt: 2},
		{Title: "medium", Priority: model.PriorityMedium, CreatedAt: 3},
		{Title: "high-late", Priority: model.PriorityHigh, DueDate: due(900), CreatedAt: 4},
		{Title: "high-undated", Priority: model.PriorityHigh, CreatedAt: 5},
		{Title: "high-soon", Priority: model.PriorityHigh, DueDate: due(100), CreatedAt: 6},
	}
	for _, td := range todos {
		if err := repo.Create(td); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.Todos()
	if err != nil {
		t.Fatalf("Todos: %v", err)
	}

	want := []string{"high-soon", "high-late", "high-undated", "medium", "low", "done-high"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("todos[%d] = %q, want %q", i, got[i].Title, w)
		}
	}

	n, err := repo.DeleteCompleted()
	if err != nil || n != 1 {
		t.Errorf("DeleteCompleted = %d, %v; want 1", n, err)
	}
}

func TestTodoRepository_SetCompleted(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	td := &model.Todo{Title: "call", Priority: model.PriorityMedium}
	if err := repo.Create(td); err != nil {
		t.Fatalf("Create: %v", err)
	}

	at := int64(42)
	if err := repo.SetCompleted(td.ID, true, &at); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	got, err := repo.ByID(td.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if !got.IsCompleted || got.CompletedAt == nil || *got.CompletedAt != 42 {
		t.Errorf("todo = %+v", got)
	}

	if err := repo.SetCompleted(999, true, &at); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("SetCompleted missing = %v", err)
	}
}

func TestTrackingRepository(t *testing.T) {
	repo := NewTrackingRepository(newTestDB(t))

	got, err := repo.AddWater("2026-03-10", -1, 10)
	if err != nil {
		t.Fatalf("AddWater: %v", err)
	}
	if got.WaterGlasses != 0 {
		t.Errorf("water after -1 on new day = %d, want 0", got.WaterGlasses)
	}

	for range 3 {
		got, err = repo.AddWater("2026-03-10", 1, 20)
		if err != nil {
			t.Fatalf("AddWater: %v", err)
		}
	}
	if got.WaterGlasses != 3 {
		t.Errorf("water = %d, want 3", got.WaterGlasses)
	}

	got, err = repo.AddWater("2026-03-10", -5, 30)
	if err != nil {
		t.Fatalf("AddWater: %v", err)
	}
	if got.WaterGlasses != 0 || got.Timestamp != 30 {
		t.Errorf("tracking = %+v, want 0 glasses at 30", got)
	}

	if err := repo.Upsert(&model.DailyTracking{Date: "2026-03-09", WaterGlasses: 6, SleepHours: 7.5, Timestamp: 1}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(&model.DailyTracking{Date: "2026-03-09", WaterGlasses: 8, SleepHours: 6, Timestamp: 2}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	days, err := repo.Between(model.FullDateWindow())
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if len(days) != 2 || days[0].Date != "2026-03-09" || days[0].WaterGlasses != 8 || days[0].SleepHours != 6 {
		t.Errorf("days = %+v", days)
	}

	if _, err := repo.ByDate("2026-01-01"); !errors.Is(err, ErrTrackingNotFound) {
		t.Errorf("ByDate missing = %v", err)
	}
}

func TestProfileRepository_SetActive(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	var ids []int64
	for _, name := range []string{"Ana", "Ben", "Cy"} {
		p := &model.Profile{Name: name}
		if err := repo.Create(p); err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, p.ID)
	}

	for _, id := range []int64{ids[0], ids[2], ids[1]} {
		if err := repo.SetActive(id); err != nil {
			t.Fatalf("SetActive(%d): %v", id, err)
		}

		profiles, err := repo.Profiles()
		if err != nil {
			t.Fatalf("Profiles: %v", err)
		}
		active := 0
		for _, p := range profiles {
			if p.IsActive {
				active++
				if p.ID != id {
					t.Errorf("active profile = %d, want %d", p.ID, id)
				}
			}
		}
		if active != 1 {
			t.Errorf("active count = %d, want 1", active)
		}
	}

	if err := repo.SetActive(999); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("SetActive missing = %v", err)
	}
	active, err := repo.Active()
	if err != nil || active.ID != ids[1] {
		t.Errorf("Active after failed SetActive = %+v, %v; want %d", active, err, ids[1])
	}
}

func TestProfileRepository_SingleActiveConstraint(t *testing.T) {
	database := newTestDB(t)
	repo := NewProfileRepository(database)

	a := &model.Profile{Name: "A"}
	b := &model.Profile{Name: "B"}
	for _, p := range []*model.Profile{a, b} {
		if err := repo.Create(p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.SetActive(a.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	_, err := database.Exec(`UPDATE profiles SET is_active = $1 WHERE id = $2`, true, b.ID)
	if err == nil {
		t.Error("second active profile accepted")
	}
}

func TestPreferenceRepository(t *testing.T) {
	repo := NewPreferenceRepository(newTestDB(t))

	if _, err := repo.Get("theme.dark"); !errors.Is(err, ErrPreferenceNotFound) {
		t.Errorf("Get missing = %v", err)
	}

	for _, v := range []string{"true", "false"} {
		if err := repo.Set("theme.dark", v); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := repo.Get("theme.dark")
		if err != nil || got != v {
			t.Errorf("Get = %q, %v; want %q", got, err, v)
		}
	}
}
