package fridge

import (
	"testing"

	"fridgetrack/entities"
)

func TestMapNutrimentsPrefersKcal(t *testing.T) {
	nutrients := mapNutriments(map[string]any{
		"energy-kcal_100g": 52.0,
		"energy_100g":      218.0,
		"proteins_100g":    0.3,
	})

	if nutrients.Calories != "52" {
		t.Fatalf("expected kcal field to win, got %q", nutrients.Calories)
	}
	if nutrients.Protein != "0.3" {
		t.Fatalf("unexpected protein: %q", nutrients.Protein)
	}
}

func TestMapNutrimentsConvertsKilojoules(t *testing.T) {
	nutrients := mapNutriments(map[string]any{
		"energy_100g": 418.4,
	})

	if nutrients.Calories != "100.0" {
		t.Fatalf("expected kJ/4.184, got %q", nutrients.Calories)
	}
}

func TestMapNutrimentsHandlesStringValues(t *testing.T) {
	nutrients := mapNutriments(map[string]any{
		"energy-kcal_100g": "52",
		"sugars_100g":      "10.5",
	})

	if nutrients.Calories != "52" {
		t.Fatalf("unexpected calories: %q", nutrients.Calories)
	}
	if nutrients.Sugar != "10.5" {
		t.Fatalf("unexpected sugar: %q", nutrients.Sugar)
	}
}

func TestMapNutrimentsEmptyInput(t *testing.T) {
	if got := mapNutriments(nil); got != (entities.Nutrients{}) {
		t.Fatalf("expected empty nutrients, got %+v", got)
	}
	if !nutrientsEmpty(mapNutriments(map[string]any{})) {
		t.Fatal("expected empty nutrients from empty map")
	}
}
