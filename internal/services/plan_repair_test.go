package services

import (
	"encoding/json"
	"errors"
	"testing"

	"fitplan/pkg/utils"
)

func TestExtractPlanJSONCleanInput(t *testing.T) {
	raw := `{"workoutDays": [{"day": "Day 1", "type": "rest"}], "additionalTips": []}`
	doc, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc["workoutDays"]; !ok {
		t.Fatal("workoutDays key missing from extracted document")
	}
}

func TestExtractPlanJSONStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"workoutDays\": []}\n```"
	doc, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc["workoutDays"]; !ok {
		t.Fatal("expected workoutDays after fence stripping")
	}
}

func TestExtractPlanJSONSkipsLeadingProse(t *testing.T) {
	raw := "Sure! Here is your plan:\nAs requested.\n{\"workoutDays\": [], \"additionalTips\": [\"hydrate\"]}"
	doc, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tips, ok := doc["additionalTips"].([]any)
	if !ok || len(tips) != 1 {
		t.Fatalf("additionalTips not preserved, got %v", doc["additionalTips"])
	}
}

func TestExtractPlanJSONClosesTruncatedBraces(t *testing.T) {
	// Tail cut off mid-structure after the last complete value.
	raw := `{"workoutDays": [], "meta": {"note": "cut"`
	doc, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta, ok := doc["meta"].(map[string]any)
	if !ok {
		t.Fatalf("meta object lost in repair, got %v", doc["meta"])
	}
	if meta["note"] != "cut" {
		t.Fatalf("meta.note = %v, want %q", meta["note"], "cut")
	}
}

func TestExtractPlanJSONTakesLastCompleteObject(t *testing.T) {
	raw := `{"draft": true} some chatter {"workoutDays": [], "final": true}`
	doc, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc["final"] != true {
		t.Fatalf("expected the last object to win, got %v", doc)
	}
	if _, ok := doc["draft"]; ok {
		t.Fatal("draft object should have been discarded")
	}
}

func TestExtractPlanJSONIgnoresBracesInsideStrings(t *testing.T) {
	raw := `{"note": "use {braces} carefully", "workoutDays": []}`
	doc, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc["note"] != "use {braces} carefully" {
		t.Fatalf("string content mangled: %v", doc["note"])
	}
}

func TestExtractPlanJSONStripsStrayNonASCII(t *testing.T) {
	// Non-breaking space between tokens breaks the decoder.
	raw := "{\"workoutDays\": []}"
	doc, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc["workoutDays"].([]any); !ok {
		t.Fatalf("workoutDays missing after non-ASCII cleanup: %v", doc)
	}
}

func TestExtractPlanJSONNoObject(t *testing.T) {
	_, err := ExtractPlanJSON("no structured content here")
	if !errors.Is(err, utils.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractPlanJSONUndecodable(t *testing.T) {
	_, err := ExtractPlanJSON(`{"workoutDays": [,,,]`)
	if !errors.Is(err, utils.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestExtractPlanJSONIdempotentOnItsOwnOutput(t *testing.T) {
	raw := "```json\n{\"workoutDays\": [{\"day\": \"Day 1\", \"type\": \"workout\"}]}\n```"
	first, err := ExtractPlanJSON(raw)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	reserialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := ExtractPlanJSON(string(reserialized))
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("extraction not stable: %s vs %s", a, b)
	}
}
