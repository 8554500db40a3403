package fridge

import (
	"context"
	"errors"
	"time"

	"fridgetrack/domain"
	"fridgetrack/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultShelfLifeDays is used when neither the product payload nor the
// caller provides a shelf life.
const defaultShelfLifeDays = 7

type (
	FridgeService interface {
		GetFridge(ctx context.Context, userID string) ([]domain.FridgeItem, error)
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FridgeItem, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FridgeItem, error)
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		LogBarcode(ctx context.Context, req domain.BarcodeLogRequest, userID string) (domain.FridgeItem, error)
		LogVision(ctx context.Context, req domain.VisionLogRequest, userID string) (domain.FridgeItem, error)
		CreateFoodType(ctx context.Context, req domain.CreateFoodTypeRequest) (domain.FoodTypeView, error)
		GetFoodTypes(ctx context.Context, page, limit int) ([]domain.FoodTypeView, int64, error)
	}

	fridgeService struct {
		fridgeRepository FridgeRepository
	}
)

func NewFridgeService(fridgeRepository FridgeRepository) FridgeService {
	return &fridgeService{fridgeRepository: fridgeRepository}
}

func (s *fridgeService) GetFridge(ctx context.Context, userID string) ([]domain.FridgeItem, error) {
	foodItems, err := s.fridgeRepository.GetFridgeItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	fridgeItems := make([]domain.FridgeItem, 0, len(foodItems))
	for _, item := range foodItems {
		if item.Type == nil {
			return nil, domain.ErrFoodTypeMissing
		}
		fridgeItems = append(fridgeItems, toFridgeItem(item, item.Type))
	}
	return fridgeItems, nil
}

func (s *fridgeService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FridgeItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FridgeItem{}, domain.ErrParseUUID
	}

	var foodType *entities.FoodType
	if req.TypeID != "" {
		foodType, err = s.fridgeRepository.GetFoodTypeByID(ctx, req.TypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.FridgeItem{}, domain.ErrFoodTypeNotFound
			}
			return domain.FridgeItem{}, err
		}
	} else {
		shelfLife := req.ShelfLifeDays
		if shelfLife <= 0 {
			shelfLife = defaultShelfLifeDays
		}
		foodType = &entities.FoodType{
			ID:            uuid.New(),
			Name:          req.Name,
			ShelfLifeDays: shelfLife,
		}
		if err := s.fridgeRepository.CreateFoodType(ctx, foodType); err != nil {
			return domain.FridgeItem{}, err
		}
	}

	expiration, err := resolveExpiration(req.ExpirationDate, foodType.ShelfLifeDays, time.Now())
	if err != nil {
		return domain.FridgeItem{}, err
	}

	percentLeft := 100
	if req.PercentLeft != nil {
		percentLeft = clampPercent(*req.PercentLeft)
	}

	foodItem := &entities.FoodItem{
		ID:             uuid.New(),
		TypeID:         foodType.ID,
		UserID:         userUUID,
		ExpirationDate: expiration,
		PercentLeft:    percentLeft,
	}
	if err := s.fridgeRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FridgeItem{}, err
	}

	return toFridgeItem(foodItem, foodType), nil
}

func (s *fridgeService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FridgeItem, error) {
	foodItem, err := s.fridgeRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FridgeItem{}, domain.ErrFoodItemNotFound
		}
		return domain.FridgeItem{}, err
	}

	if foodItem.UserID.String() != userID {
		return domain.FridgeItem{}, domain.ErrUnauthorizedAccess
	}

	if req.ExpirationDate != "" {
		expiration, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			return domain.FridgeItem{}, domain.ErrInvalidExpirationDate
		}
		foodItem.ExpirationDate = &expiration
	}
	if req.PercentLeft != nil {
		foodItem.PercentLeft = clampPercent(*req.PercentLeft)
	}

	if err := s.fridgeRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FridgeItem{}, err
	}
	if foodItem.Type == nil {
		return domain.FridgeItem{}, domain.ErrFoodTypeMissing
	}
	return toFridgeItem(foodItem, foodItem.Type), nil
}

func (s *fridgeService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.fridgeRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if foodItem.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.fridgeRepository.DeleteFoodItem(ctx, id)
}

func (s *fridgeService) CreateFoodType(ctx context.Context, req domain.CreateFoodTypeRequest) (domain.FoodTypeView, error) {
	foodType := &entities.FoodType{
		ID:            uuid.New(),
		Name:          req.Name,
		ShelfLifeDays: req.ShelfLifeDays,
		Nutrients:     toEntityNutrients(req.Nutrients),
	}
	if req.Barcode != "" {
		barcode := req.Barcode
		foodType.BarcodeID = &barcode
	}
	if foodType.ShelfLifeDays <= 0 {
		foodType.ShelfLifeDays = defaultShelfLifeDays
	}

	if err := s.fridgeRepository.CreateFoodType(ctx, foodType); err != nil {
		return domain.FoodTypeView{}, err
	}
	return toFoodTypeView(foodType), nil
}

func (s *fridgeService) GetFoodTypes(ctx context.Context, page, limit int) ([]domain.FoodTypeView, int64, error) {
	foodTypes, count, err := s.fridgeRepository.GetFoodTypes(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]domain.FoodTypeView, 0, len(foodTypes))
	for _, foodType := range foodTypes {
		views = append(views, toFoodTypeView(foodType))
	}
	return views, count, nil
}

// resolveExpiration prefers an explicit date and otherwise derives one from
// the shelf life. An empty date with zero shelf life yields no expiration.
func resolveExpiration(explicit string, shelfLifeDays int, now time.Time) (*time.Time, error) {
	if explicit != "" {
		expiration, err := time.Parse("2006-01-02", explicit)
		if err != nil {
			return nil, domain.ErrInvalidExpirationDate
		}
		return &expiration, nil
	}
	if shelfLifeDays <= 0 {
		return nil, nil
	}
	expiration := now.AddDate(0, 0, shelfLifeDays)
	return &expiration, nil
}

func clampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

func toFridgeItem(item *entities.FoodItem, foodType *entities.FoodType) domain.FridgeItem {
	return domain.FridgeItem{
		FoodItem: domain.FoodItemView{
			ID:             item.ID.String(),
			ExpirationDate: item.ExpirationDate,
			PercentLeft:    item.PercentLeft,
			CreatedAt:      item.CreatedAt,
		},
		FoodType: toFoodTypeView(foodType),
	}
}

func toFoodTypeView(foodType *entities.FoodType) domain.FoodTypeView {
	view := domain.FoodTypeView{
		ID:            foodType.ID.String(),
		Name:          foodType.Name,
		ShelfLifeDays: foodType.ShelfLifeDays,
		Nutrients:     toDomainNutrients(foodType.Nutrients),
	}
	if foodType.BarcodeID != nil {
		view.Barcode = *foodType.BarcodeID
	}
	return view
}

func toEntityNutrients(n domain.Nutrients) entities.Nutrients {
	return entities.Nutrients{
		Calories:      n.Calories,
		Protein:       n.Protein,
		Carbohydrates: n.Carbohydrates,
		Fat:           n.Fat,
		Fiber:         n.Fiber,
		Sugar:         n.Sugar,
		Salt:          n.Salt,
	}
}

func toDomainNutrients(n entities.Nutrients) domain.Nutrients {
	return domain.Nutrients{
		Calories:      n.Calories,
		Protein:       n.Protein,
		Carbohydrates: n.Carbohydrates,
		Fat:           n.Fat,
		Fiber:         n.Fiber,
		Sugar:         n.Sugar,
		Salt:          n.Salt,
	}
}
