package services

import (
	"fmt"
	"strings"

	"fitplan/internal/models/db_models"
	"fitplan/internal/models/plan_models"
)

// BuildPlanPrompt turns a user profile into the instruction text sent to the
// model. Pure string formatting: deterministic given the same inputs, no side
// effects.
func BuildPlanPrompt(user *db_models.User, feedback string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a certified personal trainer. Create a 7-day workout plan for this client:\n\n")

	prompt.WriteString(fmt.Sprintf("- Age: %d\n", user.Age))
	if user.Sex != "" {
		prompt.WriteString(fmt.Sprintf("- Sex: %s\n", user.Sex))
	}
	if user.WeightKg > 0 {
		prompt.WriteString(fmt.Sprintf("- Weight: %.1f kg\n", user.WeightKg))
	}
	if user.HeightCm > 0 {
		prompt.WriteString(fmt.Sprintf("- Height: %.0f cm\n", user.HeightCm))
	}
	prompt.WriteString(fmt.Sprintf("- Fitness level: %s\n", defaultString(user.FitnessLevel, "beginner")))
	prompt.WriteString(fmt.Sprintf("- Goals: %s\n", defaultString(user.Goals, "general fitness")))
	prompt.WriteString(fmt.Sprintf("- Available equipment: %s\n", defaultString(user.Equipment, "none")))
	prompt.WriteString(fmt.Sprintf("- Session duration: %d minutes\n", defaultInt(user.SessionMinutes, 45)))
	prompt.WriteString(fmt.Sprintf("- Preferred workout days per week: %d\n", defaultInt(user.WorkoutDaysCount, 4)))

	if strings.TrimSpace(feedback) != "" {
		prompt.WriteString(fmt.Sprintf("\nClient feedback on the previous plan:\n%s\n", strings.TrimSpace(feedback)))
	}

	prompt.WriteString("\nHard requirements:\n")
	prompt.WriteString("- The plan covers EXACTLY 7 days, labeled \"Day 1\" through \"Day 7\".\n")
	prompt.WriteString(fmt.Sprintf("- Exactly %d days have type \"workout\"; the rest are \"active_recovery\" or \"rest\".\n",
		defaultInt(user.WorkoutDaysCount, 4)))
	prompt.WriteString("- Rest days carry no exercises.\n")
	prompt.WriteString(fmt.Sprintf("- Every exercise has \"exercise_type\" from: %s.\n",
		strings.Join(plan_models.CanonicalExerciseTypes, ", ")))
	prompt.WriteString(fmt.Sprintf("- Every exercise has \"tracking_type\" from: %s.\n",
		strings.Join(plan_models.CanonicalTrackingTypes, ", ")))
	prompt.WriteString("- tracking_type \"duration\" exercises require \"duration\" and \"intensity\" fields.\n")
	prompt.WriteString("- tracking_type \"sets_reps\" exercises require \"sets\" and \"reps\"; \"sets_reps_weight\" additionally requires \"weight\".\n")
	prompt.WriteString("- flexibility exercises include \"sensation_guidance\" (array), \"hold_duration\" (string) and \"contraindications\" (array) inside \"instructions\".\n")
	prompt.WriteString("- Every exercise carries an \"instructions\" object with \"setup\", \"execution\" (array) and \"form_tips\" (array).\n")

	prompt.WriteString("\nReturn JSON ONLY, no markdown, in this exact shape:\n")
	prompt.WriteString(`{
  "workoutDays": [
    {
      "day": "Day 1",
      "type": "workout",
      "workout_type": "upper body strength",
      "duration": "45 minutes",
      "exercises": [
        {
          "name": "Push Ups",
          "exercise_type": "strength",
          "tracking_type": "sets_reps",
          "sets": "3",
          "reps": "12",
          "instructions": {
            "setup": "Start in a high plank position",
            "execution": ["Lower your chest to the floor", "Press back up"],
            "form_tips": ["Keep your core tight"]
          }
        }
      ],
      "notes": "Warm up for 5 minutes first"
    }
  ],
  "additionalTips": ["Stay hydrated"]
}`)

	return prompt.String()
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func defaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
