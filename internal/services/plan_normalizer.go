package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fitplan/internal/models/plan_models"
)

// DayLabelStyle selects how day labels are rewritten: plan generation uses
// ordinals ("Day 1".."Day 7"), the schedule view uses weekday names.
type DayLabelStyle int

const (
	LabelOrdinal DayLabelStyle = iota
	LabelWeekday
)

var weekdayLabels = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// dayTypeSynonyms maps collapsed free-text day types onto the canonical
// tokens. Keys are lowercased with all non-alphanumerics removed.
var dayTypeSynonyms = map[string]string{
	"workout":        plan_models.DayTypeWorkout,
	"training":       plan_models.DayTypeWorkout,
	"trainingday":    plan_models.DayTypeWorkout,
	"exercise":       plan_models.DayTypeWorkout,
	"activerecovery": plan_models.DayTypeActiveRecovery,
	"recovery":       plan_models.DayTypeActiveRecovery,
	"active":         plan_models.DayTypeActiveRecovery,
	"rest":           plan_models.DayTypeRest,
	"restday":        plan_models.DayTypeRest,
	"off":            plan_models.DayTypeRest,
	"offday":         plan_models.DayTypeRest,
}

// exerciseTypeSynonyms folds loose AI exercise categories onto the canonical
// enum. The cardio family absorbs conditioning-style vocabulary.
var exerciseTypeSynonyms = map[string]string{
	"strength":          plan_models.ExerciseTypeStrength,
	"weights":           plan_models.ExerciseTypeStrength,
	"weightlifting":     plan_models.ExerciseTypeStrength,
	"resistance":        plan_models.ExerciseTypeStrength,
	"hypertrophy":       plan_models.ExerciseTypeStrength,
	"bodyweight":        plan_models.ExerciseTypeStrength,
	"cardio":            plan_models.ExerciseTypeCardio,
	"conditioning":      plan_models.ExerciseTypeCardio,
	"circuittraining":   plan_models.ExerciseTypeCardio,
	"circuit":           plan_models.ExerciseTypeCardio,
	"hiit":              plan_models.ExerciseTypeCardio,
	"aerobic":           plan_models.ExerciseTypeCardio,
	"endurance":         plan_models.ExerciseTypeCardio,
	"flexibility":       plan_models.ExerciseTypeFlexibility,
	"stretching":        plan_models.ExerciseTypeFlexibility,
	"stretch":           plan_models.ExerciseTypeFlexibility,
	"mobility":          plan_models.ExerciseTypeFlexibility,
	"yoga":              plan_models.ExerciseTypeFlexibility,
	"balance":           plan_models.ExerciseTypeBalance,
	"stability":         plan_models.ExerciseTypeBalance,
	"corestability":     plan_models.ExerciseTypeBalance,
	"balancetraining":   plan_models.ExerciseTypeBalance,
	"proprioception":    plan_models.ExerciseTypeBalance,
	"functionalbalance": plan_models.ExerciseTypeBalance,
}

var trackingTypeSynonyms = map[string]string{
	"setsreps":          plan_models.TrackingSetsReps,
	"setsandreps":       plan_models.TrackingSetsReps,
	"reps":              plan_models.TrackingSetsReps,
	"repetitions":       plan_models.TrackingSetsReps,
	"setsrepsweight":    plan_models.TrackingSetsRepsWeight,
	"weighted":          plan_models.TrackingSetsRepsWeight,
	"setsrepsweighted":  plan_models.TrackingSetsRepsWeight,
	"duration":          plan_models.TrackingDuration,
	"time":              plan_models.TrackingDuration,
	"timed":             plan_models.TrackingDuration,
	"timebased":         plan_models.TrackingDuration,
	"durationintensity": plan_models.TrackingDuration,
}

// NormalizePlanDocument reshapes a repaired model response into the canonical
// plan schema: synonym day/exercise types, default videoId and instruction
// skeletons, numeric measurement fields rendered as strings, and day labels
// rewritten to match array position. The input is deep-copied first; the
// caller's document is never mutated.
func NormalizePlanDocument(raw map[string]any, style DayLabelStyle) map[string]any {
	doc, _ := deepCopyValue(raw).(map[string]any)
	if doc == nil {
		doc = map[string]any{}
	}

	days, _ := doc["workoutDays"].([]any)
	for i, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			continue
		}
		normalizeDay(day, i, style)
		days[i] = day
	}
	doc["workoutDays"] = days

	if _, ok := doc["additionalTips"].([]any); !ok {
		doc["additionalTips"] = []any{}
	}

	return doc
}

func normalizeDay(day map[string]any, position int, style DayLabelStyle) {
	// Mismatched labels are corrected to the 1-based array position,
	// never rejected.
	if style == LabelWeekday && position < len(weekdayLabels) {
		day["day"] = weekdayLabels[position]
	} else {
		day["day"] = fmt.Sprintf("Day %d", position+1)
	}

	day["type"] = NormalizeDayType(stringValue(day["type"]))

	if v, ok := day["duration"]; ok {
		day["duration"] = numericToString(v)
	}

	if day["type"] == plan_models.DayTypeRest {
		// Rest days carry no exercises.
		day["exercises"] = []any{}
		return
	}

	exercises, _ := day["exercises"].([]any)
	if exercises == nil {
		exercises = []any{}
	}
	for i, e := range exercises {
		exercise, ok := e.(map[string]any)
		if !ok {
			continue
		}
		normalizeExercise(exercise)
		exercises[i] = exercise
	}
	day["exercises"] = exercises
}

func normalizeExercise(exercise map[string]any) {
	exercise["exercise_type"] = NormalizeExerciseType(stringValue(exercise["exercise_type"]))
	exercise["tracking_type"] = NormalizeTrackingType(stringValue(exercise["tracking_type"]))

	if _, ok := exercise["videoId"]; !ok {
		exercise["videoId"] = nil
	}

	instructions, _ := exercise["instructions"].(map[string]any)
	if instructions == nil {
		instructions = map[string]any{}
	}
	if stringValue(instructions["setup"]) == "" {
		instructions["setup"] = "Get into the starting position"
	}
	if _, ok := instructions["execution"].([]any); !ok {
		instructions["execution"] = []any{"Perform the movement with control"}
	}
	if _, ok := instructions["form_tips"].([]any); !ok {
		instructions["form_tips"] = []any{"Maintain good form throughout"}
	}
	exercise["instructions"] = instructions

	// Measurement fields are numeric-as-string downstream; convert what
	// the tracking type requires plus anything numeric the model sent.
	switch exercise["tracking_type"] {
	case plan_models.TrackingDuration:
		ensureStringField(exercise, "duration", "30 seconds")
		ensureStringField(exercise, "intensity", "moderate")
	case plan_models.TrackingSetsRepsWeight:
		ensureStringField(exercise, "sets", "3")
		ensureStringField(exercise, "reps", "10")
		ensureStringField(exercise, "weight", "bodyweight")
	default:
		ensureStringField(exercise, "sets", "3")
		ensureStringField(exercise, "reps", "10")
	}
	for _, field := range []string{"sets", "reps", "weight", "duration", "intensity"} {
		if v, ok := exercise[field]; ok {
			exercise[field] = numericToString(v)
		}
	}
}

// NormalizeDayType maps free-text day types ("active recovery",
// "active-recovery", "activerecovery", ...) onto the canonical token.
func NormalizeDayType(raw string) string {
	key := collapseToken(raw)
	if canonical, ok := dayTypeSynonyms[key]; ok {
		return canonical
	}
	if strings.Contains(key, "recovery") {
		return plan_models.DayTypeActiveRecovery
	}
	if strings.Contains(key, "rest") {
		return plan_models.DayTypeRest
	}
	if key == "" {
		return plan_models.DayTypeRest
	}
	return plan_models.DayTypeWorkout
}

// NormalizeExerciseType maps loose category names onto the canonical
// exercise_type enum; unrecognized values pass through collapsed so the
// validator reports them.
func NormalizeExerciseType(raw string) string {
	key := collapseToken(raw)
	if canonical, ok := exerciseTypeSynonyms[key]; ok {
		return canonical
	}
	switch {
	case strings.Contains(key, "cardio"), strings.Contains(key, "conditioning"),
		strings.Contains(key, "circuit"), strings.Contains(key, "interval"):
		return plan_models.ExerciseTypeCardio
	case strings.Contains(key, "stretch"), strings.Contains(key, "flex"),
		strings.Contains(key, "mobility"):
		return plan_models.ExerciseTypeFlexibility
	case strings.Contains(key, "balance"), strings.Contains(key, "stability"):
		return plan_models.ExerciseTypeBalance
	case strings.Contains(key, "strength"), strings.Contains(key, "weight"),
		strings.Contains(key, "resistance"):
		return plan_models.ExerciseTypeStrength
	}
	return key
}

func NormalizeTrackingType(raw string) string {
	key := collapseToken(raw)
	if canonical, ok := trackingTypeSynonyms[key]; ok {
		return canonical
	}
	switch {
	case strings.Contains(key, "duration"), strings.Contains(key, "time"):
		return plan_models.TrackingDuration
	case strings.Contains(key, "weight"):
		return plan_models.TrackingSetsRepsWeight
	case strings.Contains(key, "rep"), strings.Contains(key, "set"):
		return plan_models.TrackingSetsReps
	}
	return plan_models.TrackingSetsReps
}

func collapseToken(raw string) string {
	return nonAlphaNum.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "")
}

func ensureStringField(m map[string]any, key, fallback string) {
	if v, ok := m[key]; ok && stringValue(v) != "" {
		return
	}
	if v, ok := m[key]; ok {
		if s := numericToString(v); s != "" {
			m[key] = s
			return
		}
	}
	m[key] = fallback
}

// numericToString renders JSON numbers as their string form for uniformity
// downstream; strings pass through unchanged.
func numericToString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return ""
	}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		copied := make(map[string]any, len(t))
		for k, val := range t {
			copied[k] = deepCopyValue(val)
		}
		return copied
	case []any:
		copied := make([]any, len(t))
		for i, val := range t {
			copied[i] = deepCopyValue(val)
		}
		return copied
	default:
		return t
	}
}
