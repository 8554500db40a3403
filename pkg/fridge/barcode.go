package fridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fridgetrack/domain"
	"fridgetrack/entities"
	"fridgetrack/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultOpenFoodFactsURL = "https://world.openfoodfacts.org"

type openFoodFactsProduct struct {
	ProductName    string         `json:"product_name"`
	ExpirationDate string         `json:"expiration_date"`
	Nutriments     map[string]any `json:"nutriments"`
}

type openFoodFactsResponse struct {
	Status  int                  `json:"status"`
	Product openFoodFactsProduct `json:"product"`
}

// LogBarcode looks a barcode up on OpenFoodFacts and logs a fridge item
// against the shared food type for that product, creating the type lazily.
func (s *fridgeService) LogBarcode(ctx context.Context, req domain.BarcodeLogRequest, userID string) (domain.FridgeItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FridgeItem{}, domain.ErrParseUUID
	}

	foodType, err := s.fridgeRepository.GetFoodTypeByBarcode(ctx, req.Barcode)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FridgeItem{}, err
	}

	var product *openFoodFactsProduct
	if foodType == nil || nutrientsEmpty(foodType.Nutrients) {
		product, err = fetchProduct(ctx, req.Barcode)
		if err != nil && foodType == nil {
			return domain.FridgeItem{}, err
		}
	}

	if foodType == nil {
		barcode := req.Barcode
		foodType = &entities.FoodType{
			ID:            uuid.New(),
			Name:          product.ProductName,
			ShelfLifeDays: defaultShelfLifeDays,
			BarcodeID:     &barcode,
			Nutrients:     mapNutriments(product.Nutriments),
		}
		if foodType.Name == "" {
			foodType.Name = "Unknown Product"
		}
		if err := s.fridgeRepository.CreateFoodType(ctx, foodType); err != nil {
			return domain.FridgeItem{}, err
		}
	} else if product != nil && nutrientsEmpty(foodType.Nutrients) {
		// Nutrient backfill is the only mutation a food type sees.
		foodType.Nutrients = mapNutriments(product.Nutriments)
		if err := s.fridgeRepository.UpdateFoodType(ctx, foodType); err != nil {
			return domain.FridgeItem{}, err
		}
	}

	explicitDate := req.ExpirationDate
	if explicitDate == "" && product != nil && product.ExpirationDate != "" {
		if _, err := time.Parse("2006-01-02", product.ExpirationDate); err == nil {
			explicitDate = product.ExpirationDate
		}
	}

	expiration, err := resolveExpiration(explicitDate, foodType.ShelfLifeDays, time.Now())
	if err != nil {
		return domain.FridgeItem{}, err
	}

	foodItem := &entities.FoodItem{
		ID:             uuid.New(),
		TypeID:         foodType.ID,
		UserID:         userUUID,
		ExpirationDate: expiration,
		PercentLeft:    100,
	}
	if err := s.fridgeRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FridgeItem{}, err
	}

	return toFridgeItem(foodItem, foodType), nil
}

func fetchProduct(ctx context.Context, barcode string) (*openFoodFactsProduct, error) {
	baseURL := utils.GetConfig("OPENFOODFACTS_URL")
	if baseURL == "" {
		baseURL = defaultOpenFoodFactsURL
	}

	url := fmt.Sprintf("%s/api/v2/product/%s.json", baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrProductLookupFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrProductLookupFailed
	}

	var payload openFoodFactsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.ErrProductLookupFailed
	}
	if payload.Status != 1 {
		return nil, domain.ErrProductNotFound
	}

	return &payload.Product, nil
}

// mapNutriments converts the heterogeneous OpenFoodFacts nutriment map into
// the local per-100g shape. Energy prefers the explicit kcal field and falls
// back to converting the kJ value.
func mapNutriments(nutriments map[string]any) entities.Nutrients {
	if nutriments == nil {
		return entities.Nutrients{}
	}

	nutrients := entities.Nutrients{
		Protein:       nutrimentString(nutriments, "proteins_100g"),
		Carbohydrates: nutrimentString(nutriments, "carbohydrates_100g"),
		Fat:           nutrimentString(nutriments, "fat_100g"),
		Fiber:         nutrimentString(nutriments, "fiber_100g"),
		Sugar:         nutrimentString(nutriments, "sugars_100g"),
		Salt:          nutrimentString(nutriments, "salt_100g"),
	}

	if kcal := nutrimentString(nutriments, "energy-kcal_100g"); kcal != "" {
		nutrients.Calories = kcal
	} else if kj, ok := nutrimentFloat(nutriments, "energy_100g"); ok {
		nutrients.Calories = strconv.FormatFloat(kj/4.184, 'f', 1, 64)
	}

	return nutrients
}

func nutrimentString(nutriments map[string]any, key string) string {
	switch v := nutriments[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func nutrimentFloat(nutriments map[string]any, key string) (float64, bool) {
	switch v := nutriments[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func nutrientsEmpty(n entities.Nutrients) bool {
	return n == entities.Nutrients{}
}
