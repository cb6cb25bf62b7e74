package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"fitplan/pkg/logger"
	"fitplan/pkg/utils"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func validExercise(exerciseType, trackingType string) map[string]any {
	exercise := map[string]any{
		"name":          "Push Ups",
		"exercise_type": exerciseType,
		"tracking_type": trackingType,
		"videoId":       nil,
		"instructions": map[string]any{
			"setup":     "Start in a high plank",
			"execution": []any{"Lower", "Press"},
			"form_tips": []any{"Core tight"},
		},
	}
	switch trackingType {
	case "duration":
		exercise["duration"] = "30 seconds"
		exercise["intensity"] = "moderate"
	case "sets_reps_weight":
		exercise["sets"] = "3"
		exercise["reps"] = "10"
		exercise["weight"] = "20 kg"
	default:
		exercise["sets"] = "3"
		exercise["reps"] = "12"
	}
	if exerciseType == "flexibility" {
		instructions := exercise["instructions"].(map[string]any)
		instructions["sensation_guidance"] = []any{"Mild stretch in hamstrings"}
		instructions["hold_duration"] = "30 seconds"
		instructions["contraindications"] = []any{"Acute lower back pain"}
	}
	return exercise
}

// planWith builds a 7-day document with the given day-type sequence.
func planWith(dayTypes ...string) map[string]any {
	days := make([]any, 0, len(dayTypes))
	for i, dt := range dayTypes {
		day := map[string]any{
			"day":       fmt.Sprintf("Day %d", i+1),
			"type":      dt,
			"exercises": []any{},
		}
		if dt != "rest" {
			day["exercises"] = []any{validExercise("strength", "sets_reps")}
		}
		days = append(days, day)
	}
	return map[string]any{"workoutDays": days, "additionalTips": []any{}}
}

func TestValidateDocumentAcceptsWellFormedPlan(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	doc := planWith("workout", "workout", "active_recovery", "workout", "rest", "workout", "rest")
	if err := v.ValidateDocument(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDocumentRejectsEmptyPlan(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	err := v.ValidateDocument(map[string]any{"workoutDays": []any{}})
	if !errors.Is(err, utils.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestValidateDocumentRejectsUnknownDayType(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	doc := planWith("workout")
	doc["workoutDays"].([]any)[0].(map[string]any)["type"] = "legday"
	err := v.ValidateDocument(doc)
	if !errors.Is(err, utils.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestValidateDocumentRejectsRestDayWithExercises(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	doc := planWith("rest")
	doc["workoutDays"].([]any)[0].(map[string]any)["exercises"] = []any{validExercise("strength", "sets_reps")}
	err := v.ValidateDocument(doc)
	if !errors.Is(err, utils.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestValidateDocumentTrackingTypeFieldRequirements(t *testing.T) {
	cases := []struct {
		trackingType string
		dropField    string
	}{
		{"sets_reps", "sets"},
		{"sets_reps", "reps"},
		{"sets_reps_weight", "weight"},
		{"duration", "duration"},
		{"duration", "intensity"},
	}
	v := NewPlanValidator(newTestLogger(t))
	for _, c := range cases {
		doc := planWith("workout")
		exercise := validExercise("strength", c.trackingType)
		delete(exercise, c.dropField)
		doc["workoutDays"].([]any)[0].(map[string]any)["exercises"] = []any{exercise}

		err := v.ValidateDocument(doc)
		if !errors.Is(err, utils.ErrSchemaValidation) {
			t.Errorf("%s without %s: expected ErrSchemaValidation, got %v", c.trackingType, c.dropField, err)
		}
	}
}

func TestValidateDocumentFlexibilityRequiresExtendedInstructions(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))

	for _, missing := range []string{"sensation_guidance", "hold_duration", "contraindications"} {
		doc := planWith("workout")
		exercise := validExercise("flexibility", "duration")
		delete(exercise["instructions"].(map[string]any), missing)
		doc["workoutDays"].([]any)[0].(map[string]any)["exercises"] = []any{exercise}

		err := v.ValidateDocument(doc)
		if !errors.Is(err, utils.ErrSchemaValidation) {
			t.Errorf("flexibility without %s: expected ErrSchemaValidation, got %v", missing, err)
		}
	}
}

func TestValidateDocumentFlexibilityFieldTypes(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))

	// hold_duration as a number instead of a string is a type mismatch.
	doc := planWith("workout")
	exercise := validExercise("flexibility", "duration")
	exercise["instructions"].(map[string]any)["hold_duration"] = json.Number("30")
	doc["workoutDays"].([]any)[0].(map[string]any)["exercises"] = []any{exercise}

	err := v.ValidateDocument(doc)
	if !errors.Is(err, utils.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation for non-string hold_duration, got %v", err)
	}

	// sensation_guidance as a plain string instead of an array.
	doc = planWith("workout")
	exercise = validExercise("flexibility", "duration")
	exercise["instructions"].(map[string]any)["sensation_guidance"] = "mild stretch"
	doc["workoutDays"].([]any)[0].(map[string]any)["exercises"] = []any{exercise}

	err = v.ValidateDocument(doc)
	if !errors.Is(err, utils.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation for non-array sensation_guidance, got %v", err)
	}
}

func TestValidateDistributionOffDayCap(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	// 4 workout + 3 off days: off days exceed the cap of 2 for target 5.
	doc := planWith("workout", "workout", "workout", "active_recovery", "rest", "workout", "active_recovery")
	if err := v.ValidateDistribution(doc, 5, PolicyHard); !errors.Is(err, utils.ErrDistribution) {
		t.Fatalf("expected ErrDistribution, got %v", err)
	}
}

func TestValidateDistributionWorkoutBand(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	// 5 workout days for target 5 exceeds the 3-4 band.
	doc := planWith("workout", "workout", "workout", "workout", "rest", "active_recovery", "workout")
	if err := v.ValidateDistribution(doc, 5, PolicyHard); !errors.Is(err, utils.ErrDistribution) {
		t.Fatalf("expected ErrDistribution, got %v", err)
	}
}

func TestValidateDistributionBands(t *testing.T) {
	cases := []struct {
		target  int
		workout int
		off     int
		ok      bool
	}{
		{7, 5, 2, true},
		{7, 3, 3, false}, // below min workout for target 7
		{6, 4, 2, true},
		{6, 7, 0, false}, // above max workout for target 6
		{5, 4, 2, true},
		{5, 5, 2, false},
		{4, 3, 2, true},
		{4, 2, 3, false}, // off days over cap for target 4
		{3, 2, 1, true},
		{3, 2, 2, false}, // off days over cap for target 3
	}
	v := NewPlanValidator(newTestLogger(t))
	for _, c := range cases {
		types := make([]string, 0, c.workout+c.off)
		for i := 0; i < c.workout; i++ {
			types = append(types, "workout")
		}
		for i := 0; i < c.off; i++ {
			types = append(types, "rest")
		}
		err := v.ValidateDistribution(planWith(types...), c.target, PolicyHard)
		if c.ok && err != nil {
			t.Errorf("target %d workout %d off %d: unexpected error %v", c.target, c.workout, c.off, err)
		}
		if !c.ok && !errors.Is(err, utils.ErrDistribution) {
			t.Errorf("target %d workout %d off %d: expected ErrDistribution, got %v", c.target, c.workout, c.off, err)
		}
	}
}

func TestValidateDistributionSoftPolicyNeverFails(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	doc := planWith("rest", "rest", "rest", "rest", "rest", "rest", "rest")
	if err := v.ValidateDistribution(doc, 5, PolicySoft); err != nil {
		t.Fatalf("soft policy must not reject, got %v", err)
	}
}

func TestValidateDistributionUnknownTargetClamps(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))
	// Targets below 3 use the target-3 rule.
	doc := planWith("workout", "workout", "rest")
	if err := v.ValidateDistribution(doc, 1, PolicyHard); err != nil {
		t.Fatalf("clamped low target: %v", err)
	}
	// Targets above 7 use the target-7 rule.
	doc = planWith("workout", "workout", "workout", "workout", "workout", "rest", "rest")
	if err := v.ValidateDistribution(doc, 9, PolicyHard); err != nil {
		t.Fatalf("clamped high target: %v", err)
	}
}

func TestValidateStrict(t *testing.T) {
	v := NewPlanValidator(newTestLogger(t))

	ok := planWith("workout", "workout", "rest", "workout", "active_recovery", "workout", "rest")
	if err := v.ValidateStrict(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	short := planWith("workout", "rest")
	if err := v.ValidateStrict(short); !errors.Is(err, utils.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation for short plan, got %v", err)
	}

	mislabeled := planWith("workout", "workout", "rest", "workout", "active_recovery", "workout", "rest")
	mislabeled["workoutDays"].([]any)[2].(map[string]any)["day"] = "Wednesday"
	if err := v.ValidateStrict(mislabeled); !errors.Is(err, utils.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation for mislabeled day, got %v", err)
	}
}
