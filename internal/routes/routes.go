package routes

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/app"
	"github.com/nzoschke/healthmate/internal/handler"
	"github.com/nzoschke/healthmate/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	bmi := handler.NewBMIHandler(app.BMIService, app.InsightService)
	meal := handler.NewMealHandler(app.MealService)
	habit := handler.NewHabitHandler(app.HabitService)
	todo := handler.NewTodoHandler(app.TodoService)
	tracking := handler.NewTrackingHandler(app.TrackingService)
	profile := handler.NewProfileHandler(app.ProfileService)
	affirmation := handler.NewAffirmationHandler(app.AffirmationService)
	chat := handler.NewChatHandler(app.ChatService)
	preference := handler.NewPreferenceHandler(app.PreferenceService)

	// AI endpoints share one per-client budget
	limit := middleware.RateLimit(app.AILimiter)
	ai := func(h http.HandlerFunc) http.Handler { return limit(h) }

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Health)

	// ============================================================================
	// API ROUTES (bearer token)
	// ============================================================================

	api := http.NewServeMux()

	// BMI
	api.HandleFunc("POST /api/bmi", bmi.Record)
	api.HandleFunc("GET /api/bmi", bmi.History)
	api.HandleFunc("GET /api/bmi/latest", bmi.Latest)
	api.HandleFunc("DELETE /api/bmi/{id}", bmi.Delete)
	api.HandleFunc("DELETE /api/bmi", bmi.DeleteAll)
	api.Handle("POST /api/bmi/{id}/analysis", ai(bmi.Analyze))
	api.HandleFunc("GET /api/bmi/analysis", bmi.Analysis)

	// Diet plan
	api.Handle("POST /api/diet-plan", ai(bmi.StartDietPlan))
	api.HandleFunc("GET /api/diet-plan", bmi.DietPlan)

	// Meals
	api.HandleFunc("POST /api/meals", meal.Log)
	api.HandleFunc("GET /api/meals", meal.Meals)
	api.HandleFunc("GET /api/meals/summary", meal.Summary)
	api.HandleFunc("DELETE /api/meals/{id}", meal.Delete)
	api.HandleFunc("DELETE /api/meals", meal.DeleteAll)
	api.Handle("POST /api/meals/scan", ai(meal.Scan))
	api.HandleFunc("GET /api/meals/scan", meal.ScanState)
	api.HandleFunc("POST /api/meals/scan/confirm", meal.ConfirmScan)

	// Habits
	api.HandleFunc("POST /api/habits", habit.Create)
	api.HandleFunc("GET /api/habits", habit.Habits)
	api.HandleFunc("GET /api/habits/{id}", habit.Habit)
	api.HandleFunc("PUT /api/habits/{id}", habit.Update)
	api.HandleFunc("POST /api/habits/{id}/deactivate", habit.Deactivate)
	api.HandleFunc("DELETE /api/habits/{id}", habit.Delete)
	api.HandleFunc("POST /api/habits/{id}/completions/{date}/toggle", habit.ToggleCompletion)
	api.HandleFunc("GET /api/habits/{id}/completions", habit.Completions)
	api.HandleFunc("GET /api/habits/{id}/progress", habit.Progress)

	// To-dos
	api.HandleFunc("POST /api/todos", todo.Create)
	api.HandleFunc("GET /api/todos", todo.Todos)
	api.HandleFunc("PUT /api/todos/{id}", todo.Update)
	api.HandleFunc("POST /api/todos/{id}/toggle", todo.Toggle)
	api.HandleFunc("DELETE /api/todos/{id}", todo.Delete)
	api.HandleFunc("DELETE /api/todos/completed", todo.DeleteCompleted)

	// Daily tracking
	api.HandleFunc("GET /api/tracking", tracking.Range)
	api.HandleFunc("GET /api/tracking/{date}", tracking.Day)
	api.HandleFunc("PUT /api/tracking/{date}", tracking.Set)
	api.HandleFunc("POST /api/tracking/{date}/water", tracking.AddWater)

	// Profiles
	api.HandleFunc("POST /api/profiles", profile.Create)
	api.HandleFunc("GET /api/profiles", profile.Profiles)
	api.HandleFunc("GET /api/profiles/active", profile.Active)
	api.HandleFunc("PUT /api/profiles/{id}", profile.Update)
	api.HandleFunc("POST /api/profiles/{id}/activate", profile.Activate)
	api.HandleFunc("DELETE /api/profiles/{id}", profile.Delete)

	// Affirmations
	api.HandleFunc("GET /api/affirmations", affirmation.Affirmations)
	api.HandleFunc("GET /api/affirmations/today", affirmation.Today)
	api.HandleFunc("GET /api/affirmations/categories", affirmation.Categories)

	// Chat
	api.HandleFunc("GET /api/chat", chat.Chat)
	api.Handle("POST /api/chat/messages", ai(chat.Send))
	api.Handle("POST /api/chat/images", ai(chat.SendImage))
	api.HandleFunc("DELETE /api/chat", chat.Clear)

	// Preferences
	api.HandleFunc("GET /api/preferences/theme", preference.Theme)
	api.HandleFunc("PUT /api/preferences/theme", preference.SetTheme)
	api.HandleFunc("GET /api/preferences/theme/ws", preference.ThemeSocket)

	mux.Handle("/api/", middleware.RequireToken(app.AuthService)(api))

	// Apply global middleware
	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSOrigins),
		middleware.Config(app.Cfg),
	)
}
