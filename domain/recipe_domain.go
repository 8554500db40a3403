package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessGetHistory      = "success get recipe history"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedGetHistory      = "failed to get recipe history"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrGeminiAPIFailed = errors.New("gemini API processing failed")
	ErrNoIngredients   = errors.New("no ingredients available for recipe generation")
)

type (
	SuggestRecipesRequest struct {
		IncludeExpiringOnly bool   `json:"include_expiring_only"`
		CuisineType         string `json:"cuisine_type,omitempty"`
		MaxReadyTimeMinutes int    `json:"max_ready_time_minutes,omitempty"`
	}

	Recipe struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ImageURL        string    `json:"image_url,omitempty"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		Servings        int       `json:"servings"`
		CuisineType     string    `json:"cuisine_type"`
		SourceURL       string    `json:"source_url,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeIngredient struct {
		Name            string  `json:"name"`
		Quantity        float64 `json:"quantity"`
		Unit            string  `json:"unit"`
		IsAvailable     bool    `json:"is_available"`
		DaysUntilExpiry int     `json:"days_until_expiry,omitempty"`
	}

	RecipeDetail struct {
		Recipe
		Ingredients  []RecipeIngredient `json:"ingredients"`
		Instructions []string           `json:"instructions"`
	}

	SuggestRecipesResponse struct {
		Recipes       []Recipe `json:"recipes"`
		TotalRecipes  int      `json:"total_recipes"`
		ExpiringItems int      `json:"expiring_items"`
	}

	RecipeHistoryResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int      `json:"total"`
	}
)
