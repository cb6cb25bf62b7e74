package plan_models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFromMap(t *testing.T) {
	raw := map[string]any{
		"workoutDays": []any{
			map[string]any{
				"day":  "Day 1",
				"type": "workout",
				"exercises": []any{
					map[string]any{
						"name":          "Push Ups",
						"exercise_type": "strength",
						"tracking_type": "sets_reps",
						"sets":          "3",
						"reps":          "12",
						"videoId":       nil,
						"instructions": map[string]any{
							"setup":     "High plank",
							"execution": []any{"Lower", "Press"},
							"form_tips": []any{"Core tight"},
						},
					},
				},
			},
			map[string]any{"day": "Day 2", "type": "rest", "exercises": []any{}},
		},
		"additionalTips": []any{"Stay hydrated"},
	}

	doc, err := FromMap(raw)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if len(doc.WorkoutDays) != 2 {
		t.Fatalf("days = %d, want 2", len(doc.WorkoutDays))
	}
	exercise := doc.WorkoutDays[0].Exercises[0]
	if exercise.Name != "Push Ups" || exercise.Sets != "3" {
		t.Fatalf("exercise not decoded: %+v", exercise)
	}
	if exercise.VideoID != nil {
		t.Fatal("null videoId should decode to nil pointer")
	}
	if exercise.Instructions == nil || exercise.Instructions.Setup != "High plank" {
		t.Fatalf("instructions not decoded: %+v", exercise.Instructions)
	}
}

func TestDocumentJSONKeysAreStable(t *testing.T) {
	doc := Document{
		WorkoutDays:    []Day{{Day: "Day 1", Type: DayTypeRest, Exercises: []Exercise{}}},
		AdditionalTips: []string{},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"workoutDays"`, `"additionalTips"`, `"day"`, `"type"`, `"exercises"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("serialized document missing key %s", key)
		}
	}
}

func TestDayTypeCounts(t *testing.T) {
	doc := Document{WorkoutDays: []Day{
		{Type: DayTypeWorkout},
		{Type: DayTypeWorkout},
		{Type: DayTypeActiveRecovery},
		{Type: DayTypeRest},
	}}
	counts := doc.DayTypeCounts()
	if counts[DayTypeWorkout] != 2 || counts[DayTypeActiveRecovery] != 1 || counts[DayTypeRest] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}
