package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nzoschke/healthmate/internal/model"
)

const (
	bmiSystemPrompt = "You are a friendly health coach. Explain BMI results in plain language, " +
		"mention that BMI is a rough indicator, and suggest small practical next steps. " +
		"Do not give medical diagnoses. Answer in under 200 words using short markdown bullet points."

	dietSystemPrompt = "You are a nutrition assistant. Write a one-day meal plan with breakfast, lunch, " +
		"dinner and one snack, each with an estimated calorie count, followed by a daily total. " +
		"Use markdown headings and bullet points. Do not give medical diagnoses."

	chatSystemPrompt = "You are Healthmate, a supportive wellness assistant. Answer questions about " +
		"nutrition, exercise, sleep, hydration and habits. Keep answers short and practical, and " +
		"recommend a professional for anything that sounds like a medical concern."

	foodSystemPrompt = "You identify food in photos and estimate its nutrition for one typical serving. " +
		"Reply with a single JSON object and nothing else."
)

// ErrUnreadableFood is returned when a food scan reply has no usable JSON object.
var ErrUnreadableFood = errors.New("could not read nutrition facts from the AI reply")

// BMIAnalysisRequest asks for an explanation of one BMI sample.
func BMIAnalysisRequest(sample *model.BMISample, profile *model.Profile, temperature float64) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "My BMI is %.1f (%s). Weight %.1f kg, height %.0f cm.\n",
		sample.BMI, sample.Category, sample.WeightKg, sample.HeightCm)
	writeProfile(&sb, profile)
	sb.WriteString("What does this mean for me and what should I focus on?")

	return Request{
		SystemPrompt: bmiSystemPrompt,
		Prompt:       sb.String(),
		Temperature:  temperature,
	}
}

// DietPlanRequest asks for a one-day plan. Either argument may be nil.
func DietPlanRequest(profile *model.Profile, latest *model.BMISample, temperature float64) Request {
	var sb strings.Builder
	sb.WriteString("Create a diet plan for me.\n")
	writeProfile(&sb, profile)
	if latest != nil {
		fmt.Fprintf(&sb, "Latest measurement: %.1f kg, BMI %.1f (%s).\n", latest.WeightKg, latest.BMI, latest.Category)
	}

	return Request{
		SystemPrompt: dietSystemPrompt,
		Prompt:       sb.String(),
		Temperature:  temperature,
	}
}

// ChatRequest continues a conversation. image may be nil.
func ChatRequest(history []Turn, text string, image *Image, temperature float64) Request {
	if text == "" && image != nil {
		text = "What can you tell me about this image from a health and nutrition point of view?"
	}
	return Request{
		SystemPrompt: chatSystemPrompt,
		Prompt:       text,
		Temperature:  temperature,
		History:      history,
		Image:        image,
	}
}

// FoodScanRequest asks the model to name the food and estimate its macros.
// labels are optional hints from an image labeler.
func FoodScanRequest(image *Image, labels []string, temperature float64) Request {
	var sb strings.Builder
	sb.WriteString("Identify the food in this photo. Respond with JSON only, in the form ")
	sb.WriteString(`{"food_name": string, "calories": number, "protein": number, "carbs": number, "fat": number}`)
	sb.WriteString(" where protein, carbs and fat are grams.")
	if len(labels) > 0 {
		fmt.Fprintf(&sb, " An image classifier suggested: %s.", strings.Join(labels, ", "))
	}

	return Request{
		SystemPrompt: foodSystemPrompt,
		Prompt:       sb.String(),
		Temperature:  temperature,
		Image:        image,
	}
}

func writeProfile(sb *strings.Builder, p *model.Profile) {
	if p == nil {
		return
	}
	if p.Age > 0 {
		fmt.Fprintf(sb, "Age: %d. ", p.Age)
	}
	if p.Gender != "" {
		fmt.Fprintf(sb, "Gender: %s. ", p.Gender)
	}
	if p.Goal != "" {
		fmt.Fprintf(sb, "Goal: %s. ", p.Goal)
	}
	if p.ActivityLevel != "" {
		fmt.Fprintf(sb, "Activity level: %s. ", p.ActivityLevel)
	}
	if p.TargetWeightKg > 0 {
		fmt.Fprintf(sb, "Target weight: %.1f kg. ", p.TargetWeightKg)
	}
	sb.WriteString("\n")
}

// ParseFoodReply extracts the food name and macros from a model reply. It
// accepts code fences, surrounding prose and numbers written as strings.
func ParseFoodReply(reply string) (string, model.Nutrition, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return "", model.Nutrition{}, ErrUnreadableFood
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return "", model.Nutrition{}, ErrUnreadableFood
	}

	name, _ := raw["food_name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.Nutrition{}, ErrUnreadableFood
	}

	n := model.Nutrition{
		Calories: number(raw["calories"]),
		Protein:  number(raw["protein"]),
		Carbs:    number(raw["carbs"]),
		Fat:      number(raw["fat"]),
	}
	return name, n, nil
}

func number(v any) float64 {
	switch x := v.(type) {
	case float64:
		if x < 0 {
			return 0
		}
		return x
	case string:
		s := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(x), "gkcalKCAL "))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}
