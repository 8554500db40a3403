package fridge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"fridgetrack/domain"
	"fridgetrack/entities"
	"fridgetrack/internal/utils"

	"github.com/google/uuid"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// LogVision sends a food photo to Gemini, identifies the food and its
// remaining shelf life, and logs a fridge item against a lazily created type.
func (s *fridgeService) LogVision(ctx context.Context, req domain.VisionLogRequest, userID string) (domain.FridgeItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FridgeItem{}, domain.ErrParseUUID
	}

	analysis, err := analyzeFoodImage(ctx, req.Image)
	if err != nil {
		return domain.FridgeItem{}, err
	}

	foodType := &entities.FoodType{
		ID:            uuid.New(),
		Name:          analysis.Name,
		ShelfLifeDays: analysis.ShelfLifeDays,
		Nutrients:     toEntityNutrients(analysis.Nutrients),
	}
	if err := s.fridgeRepository.CreateFoodType(ctx, foodType); err != nil {
		return domain.FridgeItem{}, err
	}

	expiration := time.Now().AddDate(0, 0, analysis.ShelfLifeDays)
	foodItem := &entities.FoodItem{
		ID:             uuid.New(),
		TypeID:         foodType.ID,
		UserID:         userUUID,
		ExpirationDate: &expiration,
		PercentLeft:    100,
	}
	if err := s.fridgeRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FridgeItem{}, err
	}

	return toFridgeItem(foodItem, foodType), nil
}

func analyzeFoodImage(ctx context.Context, imageFile *multipart.FileHeader) (domain.VisionAnalysis, error) {
	file, err := imageFile.Open()
	if err != nil {
		return domain.VisionAnalysis{}, err
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return domain.VisionAnalysis{}, err
	}

	base64Image := base64.StdEncoding.EncodeToString(fileData)

	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return domain.VisionAnalysis{}, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return domain.VisionAnalysis{}, fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	mimeType := imageFile.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"

		ext := strings.ToLower(filepath.Ext(imageFile.Filename))
		switch ext {
		case ".png":
			mimeType = "image/png"
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".gif":
			mimeType = "image/gif"
		case ".webp":
			mimeType = "image/webp"
		}
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": "Identify the food in this image and respond ONLY with a valid JSON object containing exactly these fields: 'name' (string), 'shelfLifeDays' (number, typical days this food keeps in a fridge), 'confidenceScore' (number between 0 and 1), and 'nutrients' (object with string fields 'calories', 'protein', 'carbohydrates', 'fat' per 100g, empty string when unknown). Do not include any explanations, markdown formatting, or extra text.",
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64Image,
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.VisionAnalysis{}, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.VisionAnalysis{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return domain.VisionAnalysis{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.VisionAnalysis{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
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
		return domain.VisionAnalysis{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.VisionAnalysis{}, domain.ErrVisionProcessingFailed
	}

	return parseVisionResponse(geminiResp.Candidates[0].Content.Parts[0].Text)
}

// parseVisionResponse extracts the JSON verdict from the raw model text,
// tolerating markdown fences and surrounding prose.
func parseVisionResponse(responseText string) (domain.VisionAnalysis, error) {
	if match := jsonObjectPattern.FindString(responseText); match != "" {
		responseText = match
	}

	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}
	responseText = strings.TrimSpace(responseText)

	var analysis domain.VisionAnalysis
	if err := json.Unmarshal([]byte(responseText), &analysis); err != nil {
		type alternativeResponse struct {
			FoodName        string            `json:"foodName"`
			ShelfLife       int               `json:"shelfLife"`
			ConfidenceScore float64           `json:"confidence"`
			Nutrients       map[string]string `json:"nutrients"`
		}

		var alt alternativeResponse
		if altErr := json.Unmarshal([]byte(responseText), &alt); altErr != nil {
			return domain.VisionAnalysis{}, fmt.Errorf("failed to parse vision response: %v - Raw response: %s", err, responseText)
		}

		analysis = domain.VisionAnalysis{
			Name:          alt.FoodName,
			ShelfLifeDays: alt.ShelfLife,
			Confidence:    alt.ConfidenceScore,
			Nutrients: domain.Nutrients{
				Calories:      alt.Nutrients["calories"],
				Protein:       alt.Nutrients["protein"],
				Carbohydrates: alt.Nutrients["carbohydrates"],
				Fat:           alt.Nutrients["fat"],
			},
		}
	}

	if analysis.Name == "" {
		analysis.Name = "Unknown Food"
	}
	if analysis.ShelfLifeDays <= 0 {
		analysis.ShelfLifeDays = defaultShelfLifeDays
	}
	if analysis.Confidence < 0 || analysis.Confidence > 1 {
		analysis.Confidence = 0.5
	}

	return analysis, nil
}
