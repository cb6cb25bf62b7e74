package services

import (
	"fmt"

	"fitplan/internal/models/plan_models"
	"fitplan/pkg/logger"
	"fitplan/pkg/utils"
)

// DistributionPolicy selects how an out-of-policy day mix is treated.
// Soft logs a warning and keeps the plan; Hard rejects it. The generation
// pipeline runs Soft so a usable plan is never discarded late; explicit
// strict regeneration requests run Hard.
type DistributionPolicy int

const (
	PolicySoft DistributionPolicy = iota
	PolicyHard
)

type distributionRule struct {
	minWorkout int
	maxWorkout int
	maxOffDays int // active_recovery + rest combined
}

// distributionRules is keyed by the user's target workout-day count.
var distributionRules = map[int]distributionRule{
	7: {minWorkout: 4, maxWorkout: 6, maxOffDays: 3},
	6: {minWorkout: 4, maxWorkout: 6, maxOffDays: 2},
	5: {minWorkout: 3, maxWorkout: 4, maxOffDays: 2},
	4: {minWorkout: 2, maxWorkout: 3, maxOffDays: 2},
	3: {minWorkout: 2, maxWorkout: 3, maxOffDays: 1},
}

type PlanValidator struct {
	log *logger.Logger
}

func NewPlanValidator(log *logger.Logger) *PlanValidator {
	return &PlanValidator{log: log.With("service", "PlanValidator")}
}

// ValidateDocument checks the normalized document against the structural
// schema: required keys, enumerated values, per-tracking-type conditional
// requirements, and flexibility-specific instruction fields.
func (v *PlanValidator) ValidateDocument(doc map[string]any) error {
	days, ok := doc["workoutDays"].([]any)
	if !ok || len(days) == 0 {
		return fmt.Errorf("%w: workoutDays missing or empty", utils.ErrSchemaValidation)
	}

	for i, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: day %d is not an object", utils.ErrSchemaValidation, i+1)
		}
		if err := v.validateDay(day, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (v *PlanValidator) validateDay(day map[string]any, position int) error {
	if stringValue(day["day"]) == "" {
		return fmt.Errorf("%w: day %d missing day label", utils.ErrSchemaValidation, position)
	}

	dayType := stringValue(day["type"])
	if !contains(plan_models.CanonicalDayTypes, dayType) {
		return fmt.Errorf("%w: day %d has unknown type %q", utils.ErrSchemaValidation, position, dayType)
	}

	exercises, _ := day["exercises"].([]any)
	if dayType == plan_models.DayTypeRest {
		if len(exercises) > 0 {
			return fmt.Errorf("%w: rest day %d carries exercises", utils.ErrSchemaValidation, position)
		}
		return nil
	}

	for j, e := range exercises {
		exercise, ok := e.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: day %d exercise %d is not an object", utils.ErrSchemaValidation, position, j+1)
		}
		if err := v.validateExercise(exercise, position, j+1); err != nil {
			return err
		}
	}
	return nil
}

func (v *PlanValidator) validateExercise(exercise map[string]any, day, idx int) error {
	name := stringValue(exercise["name"])
	if name == "" {
		return fmt.Errorf("%w: day %d exercise %d missing name", utils.ErrSchemaValidation, day, idx)
	}

	exerciseType := stringValue(exercise["exercise_type"])
	if !contains(plan_models.CanonicalExerciseTypes, exerciseType) {
		return fmt.Errorf("%w: exercise %q has unknown exercise_type %q", utils.ErrSchemaValidation, name, exerciseType)
	}

	trackingType := stringValue(exercise["tracking_type"])
	if !contains(plan_models.CanonicalTrackingTypes, trackingType) {
		return fmt.Errorf("%w: exercise %q has unknown tracking_type %q", utils.ErrSchemaValidation, name, trackingType)
	}

	// Tracking type decides which measurement group is required; the
	// groups are mutually exclusive.
	switch trackingType {
	case plan_models.TrackingDuration:
		for _, field := range []string{"duration", "intensity"} {
			if stringValue(exercise[field]) == "" {
				return fmt.Errorf("%w: exercise %q missing %s", utils.ErrSchemaValidation, name, field)
			}
		}
	case plan_models.TrackingSetsRepsWeight:
		for _, field := range []string{"sets", "reps", "weight"} {
			if stringValue(exercise[field]) == "" {
				return fmt.Errorf("%w: exercise %q missing %s", utils.ErrSchemaValidation, name, field)
			}
		}
	default:
		for _, field := range []string{"sets", "reps"} {
			if stringValue(exercise[field]) == "" {
				return fmt.Errorf("%w: exercise %q missing %s", utils.ErrSchemaValidation, name, field)
			}
		}
	}

	instructions, ok := exercise["instructions"].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: exercise %q missing instructions", utils.ErrSchemaValidation, name)
	}
	if stringValue(instructions["setup"]) == "" {
		return fmt.Errorf("%w: exercise %q instructions missing setup", utils.ErrSchemaValidation, name)
	}
	for _, field := range []string{"execution", "form_tips"} {
		if _, ok := instructions[field].([]any); !ok {
			return fmt.Errorf("%w: exercise %q instructions field %s must be an array", utils.ErrSchemaValidation, name, field)
		}
	}

	if exerciseType == plan_models.ExerciseTypeFlexibility {
		if _, ok := instructions["sensation_guidance"].([]any); !ok {
			return fmt.Errorf("%w: flexibility exercise %q requires sensation_guidance as an array", utils.ErrSchemaValidation, name)
		}
		if _, ok := instructions["hold_duration"].(string); !ok {
			return fmt.Errorf("%w: flexibility exercise %q requires hold_duration as a string", utils.ErrSchemaValidation, name)
		}
		if _, ok := instructions["contraindications"].([]any); !ok {
			return fmt.Errorf("%w: flexibility exercise %q requires contraindications as an array", utils.ErrSchemaValidation, name)
		}
	}

	return nil
}

// ValidateDistribution enforces the day-count distribution policy keyed by
// the user's target workout-day count. Soft policy logs a warning on
// violations; Hard policy returns ErrDistribution.
func (v *PlanValidator) ValidateDistribution(doc map[string]any, targetWorkoutDays int, policy DistributionPolicy) error {
	rule, ok := distributionRules[targetWorkoutDays]
	if !ok {
		if targetWorkoutDays < 3 {
			rule = distributionRules[3]
		} else {
			rule = distributionRules[7]
		}
	}

	workout, offDays := dayMix(doc)

	var violation string
	switch {
	case workout < rule.minWorkout || workout > rule.maxWorkout:
		violation = fmt.Sprintf("workout day count %d outside allowed range %d-%d for target %d",
			workout, rule.minWorkout, rule.maxWorkout, targetWorkoutDays)
	case offDays > rule.maxOffDays:
		violation = fmt.Sprintf("active_recovery+rest count %d exceeds allowed %d for target %d",
			offDays, rule.maxOffDays, targetWorkoutDays)
	default:
		return nil
	}

	if policy == PolicySoft {
		v.log.Warn("plan distribution out of policy", "violation", violation)
		return nil
	}
	return fmt.Errorf("%w: %s", utils.ErrDistribution, violation)
}

// ValidateStrict additionally requires exactly 7 days with ordinals in
// strict sequence Day 1..Day 7. Violations are fatal, not warnings.
func (v *PlanValidator) ValidateStrict(doc map[string]any) error {
	days, _ := doc["workoutDays"].([]any)
	if len(days) != 7 {
		return fmt.Errorf("%w: expected exactly 7 days, got %d", utils.ErrSchemaValidation, len(days))
	}
	for i, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: day %d is not an object", utils.ErrSchemaValidation, i+1)
		}
		expected := fmt.Sprintf("Day %d", i+1)
		if stringValue(day["day"]) != expected {
			return fmt.Errorf("%w: day label %q at position %d, expected %q",
				utils.ErrSchemaValidation, stringValue(day["day"]), i+1, expected)
		}
	}
	return nil
}

func dayMix(doc map[string]any) (workout int, offDays int) {
	days, _ := doc["workoutDays"].([]any)
	for _, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			continue
		}
		switch stringValue(day["type"]) {
		case plan_models.DayTypeWorkout:
			workout++
		case plan_models.DayTypeActiveRecovery, plan_models.DayTypeRest:
			offDays++
		}
	}
	return workout, offDays
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
