package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fridgetrack/domain"
	"fridgetrack/entities"
	"fridgetrack/internal/utils"
	"fridgetrack/pkg/fridge"
	"fridgetrack/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// expiringWindowDays bounds the "use it soon" window for recipe suggestions.
const expiringWindowDays = 7

type (
	RecipeService interface {
		SuggestRecipes(ctx context.Context, req domain.SuggestRecipesRequest, userID string) (domain.SuggestRecipesResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		GetRecipeHistory(ctx context.Context, page, limit int, userID string) (domain.RecipeHistoryResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		fridgeRepository fridge.FridgeRepository
		userRepository   user.UserRepository
	}

	ingredientContext struct {
		Name            string `json:"name"`
		PercentLeft     int    `json:"percentLeft"`
		ExpirationDate  string `json:"expirationDate,omitempty"`
		DaysUntilExpiry int    `json:"daysUntilExpiry,omitempty"`
	}

	storedIngredient struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
)

func NewRecipeService(recipeRepository RecipeRepository, fridgeRepository fridge.FridgeRepository, userRepository user.UserRepository) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		fridgeRepository: fridgeRepository,
		userRepository:   userRepository,
	}
}

func (s *recipeService) SuggestRecipes(ctx context.Context, req domain.SuggestRecipesRequest, userID string) (domain.SuggestRecipesResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SuggestRecipesResponse{}, domain.ErrParseUUID
	}

	foodItems, err := s.fridgeRepository.GetFridgeItems(ctx, userID)
	if err != nil {
		return domain.SuggestRecipesResponse{}, err
	}

	now := time.Now()
	expiringCutoff := now.AddDate(0, 0, expiringWindowDays)

	ingredients := make([]ingredientContext, 0, len(foodItems))
	expiringItems := 0
	for _, item := range foodItems {
		if item.Type == nil || item.PercentLeft == 0 {
			continue
		}

		expiring := item.ExpirationDate != nil && item.ExpirationDate.Before(expiringCutoff)
		if expiring {
			expiringItems++
		}
		if req.IncludeExpiringOnly && !expiring {
			continue
		}

		ingredient := ingredientContext{
			Name:        item.Type.Name,
			PercentLeft: item.PercentLeft,
		}
		if item.ExpirationDate != nil {
			ingredient.ExpirationDate = item.ExpirationDate.Format("2006-01-02")
			ingredient.DaysUntilExpiry = int(item.ExpirationDate.Sub(now).Hours() / 24)
		}
		ingredients = append(ingredients, ingredient)
	}

	if len(ingredients) == 0 {
		return domain.SuggestRecipesResponse{
			Recipes:       []domain.Recipe{},
			ExpiringItems: expiringItems,
		}, domain.ErrNoIngredients
	}

	dietaryPreferences := ""
	if u, err := s.userRepository.GetByID(ctx, userID); err == nil {
		dietaryPreferences = u.DietaryPreferences
	}

	// The external search API is cheap and deterministic, so it goes first;
	// the generative path covers missing config or an empty result.
	candidates, err := s.searchExternalRecipes(ctx, ingredients, req)
	if err != nil || len(candidates) == 0 {
		candidates, err = s.generateRecipes(ctx, ingredients, req, dietaryPreferences)
		if err != nil {
			return domain.SuggestRecipesResponse{}, err
		}
	}

	recipes := make([]domain.Recipe, 0, len(candidates))
	for _, candidate := range candidates {
		candidate.ID = uuid.New()
		candidate.UserID = userUUID
		candidate.CreatedAt = now

		// Persistence failure is not fatal to a suggestion response.
		_ = s.recipeRepository.CreateRecipe(ctx, candidate)

		recipes = append(recipes, toDomainRecipe(candidate))
	}

	return domain.SuggestRecipesResponse{
		Recipes:       recipes,
		TotalRecipes:  len(recipes),
		ExpiringItems: expiringItems,
	}, nil
}

// searchExternalRecipes queries the configured recipe search API by
// ingredient names. A blank RECIPE_API_URL disables the path entirely.
func (s *recipeService) searchExternalRecipes(ctx context.Context, ingredients []ingredientContext, req domain.SuggestRecipesRequest) ([]*entities.Recipe, error) {
	recipeAPIURL := utils.GetConfig("RECIPE_API_URL")
	if recipeAPIURL == "" {
		return nil, nil
	}

	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}

	searchURL := fmt.Sprintf("%s/recipes/findByIngredients?ingredients=%s&number=5", recipeAPIURL, strings.Join(names, ","))
	if apiKey := utils.GetConfig("RECIPE_API_KEY"); apiKey != "" {
		searchURL += "&apiKey=" + apiKey
	}
	if req.MaxReadyTimeMinutes > 0 {
		searchURL += fmt.Sprintf("&maxReadyTime=%d", req.MaxReadyTimeMinutes)
	}
	if req.CuisineType != "" {
		searchURL += "&cuisine=" + req.CuisineType
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("recipe API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var searchResults []struct {
		Title          string  `json:"title"`
		Image          string  `json:"image"`
		SourceURL      string  `json:"sourceUrl"`
		ReadyInMinutes float64 `json:"readyInMinutes"`
		Servings       float64 `json:"servings"`
		Summary        string  `json:"summary"`
		Ingredients    []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"usedIngredients"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResults); err != nil {
		return nil, err
	}

	recipes := make([]*entities.Recipe, 0, len(searchResults))
	for _, result := range searchResults {
		stored := make([]storedIngredient, 0, len(result.Ingredients))
		for _, ing := range result.Ingredients {
			stored = append(stored, storedIngredient{
				Name:     ing.Name,
				Quantity: ing.Amount,
				Unit:     ing.Unit,
			})
		}
		ingredientsJSON, _ := json.Marshal(stored)

		recipes = append(recipes, &entities.Recipe{
			Title:           result.Title,
			Description:     result.Summary,
			ImageURL:        result.Image,
			SourceURL:       result.SourceURL,
			CookTimeMinutes: int(result.ReadyInMinutes),
			Servings:        int(result.Servings),
			CuisineType:     req.CuisineType,
			Ingredients:     string(ingredientsJSON),
			IsGenerated:     false,
		})
	}

	return recipes, nil
}

func (s *recipeService) generateRecipes(ctx context.Context, ingredients []ingredientContext, req domain.SuggestRecipesRequest, dietaryPreferences string) ([]*entities.Recipe, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return nil, fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	filters := map[string]interface{}{}
	if req.CuisineType != "" {
		filters["cuisineType"] = req.CuisineType
	}
	if req.MaxReadyTimeMinutes > 0 {
		filters["maxReadyTimeMinutes"] = req.MaxReadyTimeMinutes
	}
	if dietaryPreferences != "" {
		filters["dietaryPreferences"] = dietaryPreferences
	}

	ingredientsJSON, _ := json.Marshal(ingredients)
	filtersJSON, _ := json.Marshal(filters)

	prompt := fmt.Sprintf(
		"You are a professional chef specializing in recipe recommendations based on available ingredients. "+
			"Given the following fridge contents (with remaining percentage and expiry dates): %s, "+
			"and these preferences/filters: %s, "+
			"generate 5 unique and interesting recipe recommendations. "+
			"Prioritize using ingredients that are closest to expiry and respect the dietary preferences strictly. "+
			"Generate the response as a valid JSON array containing 5 recipe objects with these fields: "+
			"title, description, prepTimeMinutes, cookTimeMinutes, servings, cuisineType, "+
			"ingredients (array of objects with name, quantity, unit), instructions (array of strings). "+
			"Make sure the recipes are realistic and can actually be prepared with the given ingredients. "+
			"Do not include any explanations or text outside of the JSON array.",
		string(ingredientsJSON),
		string(filtersJSON),
	)

	responseText, err := callGemini(ctx, geminiModel, geminiAPIKey, prompt)
	if err != nil {
		return nil, err
	}

	startIdx := strings.Index(responseText, "[")
	endIdx := strings.LastIndex(responseText, "]")
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		startIdx = strings.Index(responseText, "{")
		endIdx = strings.LastIndex(responseText, "}")
		if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
			return nil, fmt.Errorf("invalid response format: %s", responseText)
		}
		responseText = "[" + responseText[startIdx:endIdx+1] + "]"
	} else {
		responseText = responseText[startIdx : endIdx+1]
	}

	var rawRecipes []map[string]interface{}
	if err := json.Unmarshal([]byte(responseText), &rawRecipes); err != nil {
		return nil, err
	}

	recipes := make([]*entities.Recipe, 0, len(rawRecipes))
	for _, raw := range rawRecipes {
		title, _ := raw["title"].(string)
		if title == "" {
			continue
		}
		description, _ := raw["description"].(string)
		prepTime, _ := raw["prepTimeMinutes"].(float64)
		cookTime, _ := raw["cookTimeMinutes"].(float64)
		servings, _ := raw["servings"].(float64)
		cuisineType, _ := raw["cuisineType"].(string)

		if servings == 0 {
			servings = 4
		}
		if cuisineType == "" {
			cuisineType = "International"
		}

		recipe := &entities.Recipe{
			Title:           title,
			Description:     description,
			PrepTimeMinutes: int(prepTime),
			CookTimeMinutes: int(cookTime),
			Servings:        int(servings),
			CuisineType:     cuisineType,
			IsGenerated:     true,
		}

		if rawIngredients, ok := raw["ingredients"]; ok {
			serialized, _ := json.Marshal(rawIngredients)
			recipe.Ingredients = string(serialized)
		}
		if rawInstructions, ok := raw["instructions"]; ok {
			serialized, _ := json.Marshal(rawInstructions)
			recipe.Instructions = string(serialized)
		}

		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	if recipe.UserID.String() != userID {
		return domain.RecipeDetail{}, domain.ErrUnauthorizedAccess
	}

	foodItems, err := s.fridgeRepository.GetFridgeItems(ctx, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	var stored []storedIngredient
	if recipe.Ingredients != "" {
		_ = json.Unmarshal([]byte(recipe.Ingredients), &stored)
	}

	now := time.Now()
	ingredients := make([]domain.RecipeIngredient, 0, len(stored))
	for _, ing := range stored {
		ingredient := domain.RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}

		for _, item := range foodItems {
			if item.Type == nil || item.PercentLeft == 0 {
				continue
			}
			if ingredientMatches(item.Type.Name, ing.Name) {
				ingredient.IsAvailable = true
				if item.ExpirationDate != nil {
					ingredient.DaysUntilExpiry = int(item.ExpirationDate.Sub(now).Hours() / 24)
				}
				break
			}
		}

		ingredients = append(ingredients, ingredient)
	}

	var instructions []string
	if recipe.Instructions != "" {
		if err := json.Unmarshal([]byte(recipe.Instructions), &instructions); err != nil {
			instructions = strings.Split(recipe.Instructions, "\n")
		}
	}
	if len(instructions) == 0 {
		generated, err := s.generateInstructions(ctx, recipe.Title, ingredients)
		if err == nil && len(generated) > 0 {
			instructions = generated

			instructionsJSON, _ := json.Marshal(generated)
			recipe.Instructions = string(instructionsJSON)
			_ = s.recipeRepository.UpdateRecipe(ctx, recipe)
		} else {
			instructions = []string{"Instructions not available"}
		}
	}

	return domain.RecipeDetail{
		Recipe:       toDomainRecipe(recipe),
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}

func (s *recipeService) generateInstructions(ctx context.Context, title string, ingredients []domain.RecipeIngredient) ([]string, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return nil, fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	ingredientNames := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ingredientNames = append(ingredientNames, ing.Name)
	}

	prompt := fmt.Sprintf(
		"You are a professional chef. Generate step-by-step cooking instructions for a recipe titled '%s' using these ingredients: %s. "+
			"Return the result as a valid JSON array of strings, where each string is one step. "+
			"The instructions should be practical, realistic, and easy to follow.",
		title,
		strings.Join(ingredientNames, ", "),
	)

	responseText, err := callGemini(ctx, geminiModel, geminiAPIKey, prompt)
	if err != nil {
		return nil, err
	}

	startIdx := strings.Index(responseText, "[")
	endIdx := strings.LastIndex(responseText, "]")
	if startIdx != -1 && endIdx != -1 && startIdx < endIdx {
		var instructions []string
		if err := json.Unmarshal([]byte(responseText[startIdx:endIdx+1]), &instructions); err == nil {
			return instructions, nil
		}
	}

	return parseNumberedSteps(responseText), nil
}

func (s *recipeService) GetRecipeHistory(ctx context.Context, page, limit int, userID string) (domain.RecipeHistoryResponse, error) {
	recipes, count, err := s.recipeRepository.GetRecipesByUser(ctx, userID, page, limit)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toDomainRecipe(recipe))
	}

	return domain.RecipeHistoryResponse{
		Recipes: result,
		Total:   int(count),
	}, nil
}

func callGemini(ctx context.Context, model, apiKey, prompt string) (string, error) {
	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiAPIFailed
	}

	return strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text), nil
}

// parseNumberedSteps turns a numbered plain-text list into individual steps.
func parseNumberedSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "]") {
			continue
		}
		if strings.Contains(line, ". ") {
			parts := strings.SplitN(line, ". ", 2)
			if len(parts) > 1 {
				line = parts[1]
			}
		}
		steps = append(steps, line)
	}
	return steps
}

// ingredientMatches pairs a fridge item name with a recipe ingredient name,
// tolerating partial matches in either direction.
func ingredientMatches(itemName, ingredientName string) bool {
	a := strings.ToLower(itemName)
	b := strings.ToLower(ingredientName)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func toDomainRecipe(recipe *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		CuisineType:     recipe.CuisineType,
		SourceURL:       recipe.SourceURL,
		CreatedAt:       recipe.CreatedAt,
	}
}
