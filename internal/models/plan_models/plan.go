package plan_models

import "encoding/json"

// Canonical day types. Every day of the stored document carries exactly one.
const (
	DayTypeWorkout        = "workout"
	DayTypeActiveRecovery = "active_recovery"
	DayTypeRest           = "rest"
)

// Canonical exercise types.
const (
	ExerciseTypeStrength    = "strength"
	ExerciseTypeCardio      = "cardio"
	ExerciseTypeFlexibility = "flexibility"
	ExerciseTypeBalance     = "balance"
)

// Tracking types decide which measurement fields an exercise requires:
// sets+reps, sets+reps+weight, or duration+intensity. The groups are
// mutually exclusive.
const (
	TrackingSetsReps       = "sets_reps"
	TrackingSetsRepsWeight = "sets_reps_weight"
	TrackingDuration       = "duration"
)

var CanonicalDayTypes = []string{DayTypeWorkout, DayTypeActiveRecovery, DayTypeRest}

var CanonicalExerciseTypes = []string{
	ExerciseTypeStrength,
	ExerciseTypeCardio,
	ExerciseTypeFlexibility,
	ExerciseTypeBalance,
}

var CanonicalTrackingTypes = []string{
	TrackingSetsReps,
	TrackingSetsRepsWeight,
	TrackingDuration,
}

type Instructions struct {
	Setup             string            `json:"setup"`
	Execution         []string          `json:"execution"`
	FormTips          []string          `json:"form_tips"`
	CommonMistakes    []string          `json:"common_mistakes,omitempty"`
	SafetyTips        []string          `json:"safety_tips,omitempty"`
	Modifications     map[string]string `json:"modifications,omitempty"`
	SensationGuidance []string          `json:"sensation_guidance,omitempty"`
	HoldDuration      string            `json:"hold_duration,omitempty"`
	Contraindications []string          `json:"contraindications,omitempty"`
}

type Exercise struct {
	Name         string        `json:"name"`
	ExerciseType string        `json:"exercise_type"`
	TrackingType string        `json:"tracking_type"`
	Sets         string        `json:"sets,omitempty"`
	Reps         string        `json:"reps,omitempty"`
	Weight       string        `json:"weight,omitempty"`
	Duration     string        `json:"duration,omitempty"`
	Intensity    string        `json:"intensity,omitempty"`
	Instructions *Instructions `json:"instructions"`
	VideoID      *string       `json:"videoId"`
}

type Day struct {
	Day                 string     `json:"day"`
	Type                string     `json:"type"`
	WorkoutType         string     `json:"workout_type,omitempty"`
	Duration            string     `json:"duration,omitempty"`
	Exercises           []Exercise `json:"exercises"`
	Notes               string     `json:"notes,omitempty"`
	SuggestedActivities []string   `json:"suggested_activities,omitempty"`
}

// Document is the full 7-day plan persisted per user. This shape is the
// contract the frontend and the video-enrichment job depend on.
type Document struct {
	WorkoutDays    []Day    `json:"workoutDays"`
	AdditionalTips []string `json:"additionalTips"`
}

// FromMap decodes a normalized generic document into the typed form.
func FromMap(raw map[string]any) (*Document, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DayTypeCounts tallies the day types of a document.
func (d *Document) DayTypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, day := range d.WorkoutDays {
		counts[day.Type]++
	}
	return counts
}
