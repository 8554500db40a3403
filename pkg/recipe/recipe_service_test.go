package recipe

import (
	"testing"
)

func TestParseNumberedSteps(t *testing.T) {
	text := "1. Chop the onions\n2. Heat the oil\n\n3. Fry until golden"
	steps := parseNumberedSteps(text)

	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d: %v", len(steps), steps)
	}
	if steps[0] != "Chop the onions" {
		t.Fatalf("expected numbering stripped, got %q", steps[0])
	}
	if steps[2] != "Fry until golden" {
		t.Fatalf("unexpected last step: %q", steps[2])
	}
}

func TestParseNumberedStepsSkipsBrackets(t *testing.T) {
	text := "[\nPreheat the oven\n]"
	steps := parseNumberedSteps(text)

	if len(steps) != 1 || steps[0] != "Preheat the oven" {
		t.Fatalf("unexpected steps: %v", steps)
	}
}

func TestIngredientMatches(t *testing.T) {
	cases := []struct {
		item, ingredient string
		want             bool
	}{
		{"Whole Milk", "milk", true},
		{"milk", "Whole Milk", true},
		{"Tomato", "Tomato", true},
		{"Chicken Breast", "beef", false},
	}
	for _, tc := range cases {
		if got := ingredientMatches(tc.item, tc.ingredient); got != tc.want {
			t.Fatalf("ingredientMatches(%q, %q) = %v, want %v", tc.item, tc.ingredient, got, tc.want)
		}
	}
}
