package fridge

import (
	"testing"
)

func TestParseVisionResponseStrictJSON(t *testing.T) {
	analysis, err := parseVisionResponse(`{"name":"Banana","shelfLifeDays":5,"confidenceScore":0.92,"nutrients":{"calories":"89"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Name != "Banana" || analysis.ShelfLifeDays != 5 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
	if analysis.Confidence != 0.92 {
		t.Fatalf("unexpected confidence: %v", analysis.Confidence)
	}
	if analysis.Nutrients.Calories != "89" {
		t.Fatalf("unexpected calories: %q", analysis.Nutrients.Calories)
	}
}

func TestParseVisionResponseMarkdownFenced(t *testing.T) {
	raw := "```json\n{\"name\":\"Tomato\",\"shelfLifeDays\":7,\"confidenceScore\":0.8}\n```"
	analysis, err := parseVisionResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Name != "Tomato" {
		t.Fatalf("unexpected name: %q", analysis.Name)
	}
}

func TestParseVisionResponseSurroundingProse(t *testing.T) {
	raw := `Here is the result: {"name":"Cheese","shelfLifeDays":14,"confidenceScore":0.7} Hope that helps!`
	analysis, err := parseVisionResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Name != "Cheese" || analysis.ShelfLifeDays != 14 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
}

func TestParseVisionResponseDefaults(t *testing.T) {
	analysis, err := parseVisionResponse(`{"name":"","shelfLifeDays":0,"confidenceScore":3.5}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Name != "Unknown Food" {
		t.Fatalf("expected fallback name, got %q", analysis.Name)
	}
	if analysis.ShelfLifeDays != defaultShelfLifeDays {
		t.Fatalf("expected default shelf life, got %d", analysis.ShelfLifeDays)
	}
	if analysis.Confidence != 0.5 {
		t.Fatalf("expected clamped confidence, got %v", analysis.Confidence)
	}
}

func TestParseVisionResponseRejectsGarbage(t *testing.T) {
	if _, err := parseVisionResponse("I could not identify the food."); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}
