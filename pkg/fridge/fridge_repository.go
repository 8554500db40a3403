package fridge

import (
	"context"

	"fridgetrack/entities"

	"gorm.io/gorm"
)

type (
	FridgeRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		GetFridgeItems(ctx context.Context, userID string) ([]*entities.FoodItem, error)
		DeleteFoodItemsByUser(ctx context.Context, userID string) error

		CreateFoodType(ctx context.Context, foodType *entities.FoodType) error
		GetFoodTypeByID(ctx context.Context, id string) (*entities.FoodType, error)
		GetFoodTypeByBarcode(ctx context.Context, barcode string) (*entities.FoodType, error)
		UpdateFoodType(ctx context.Context, foodType *entities.FoodType) error
		GetFoodTypes(ctx context.Context, page, limit int) ([]*entities.FoodType, int64, error)
	}

	fridgeRepository struct {
		db *gorm.DB
	}
)

func NewFridgeRepository(db *gorm.DB) FridgeRepository {
	return &fridgeRepository{db: db}
}

func (r *fridgeRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *fridgeRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Preload("Type").Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *fridgeRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *fridgeRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{}).Error
}

func (r *fridgeRepository) GetFridgeItems(ctx context.Context, userID string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Preload("Type").
		Where("user_id = ?", userID).
		Order("expiration_date asc NULLS LAST").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *fridgeRepository) DeleteFoodItemsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.FoodItem{}).Error
}

func (r *fridgeRepository) CreateFoodType(ctx context.Context, foodType *entities.FoodType) error {
	return r.db.WithContext(ctx).Create(foodType).Error
}

func (r *fridgeRepository) GetFoodTypeByID(ctx context.Context, id string) (*entities.FoodType, error) {
	var foodType entities.FoodType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodType).Error; err != nil {
		return nil, err
	}
	return &foodType, nil
}

func (r *fridgeRepository) GetFoodTypeByBarcode(ctx context.Context, barcode string) (*entities.FoodType, error) {
	var foodType entities.FoodType
	if err := r.db.WithContext(ctx).Where("barcode_id = ?", barcode).First(&foodType).Error; err != nil {
		return nil, err
	}
	return &foodType, nil
}

func (r *fridgeRepository) UpdateFoodType(ctx context.Context, foodType *entities.FoodType) error {
	return r.db.WithContext(ctx).Save(foodType).Error
}

func (r *fridgeRepository) GetFoodTypes(ctx context.Context, page, limit int) ([]*entities.FoodType, int64, error) {
	var foodTypes []*entities.FoodType
	var count int64

	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.FoodType{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).Limit(limit).
		Order("name asc").
		Find(&foodTypes).Error; err != nil {
		return nil, 0, err
	}

	return foodTypes, count, nil
}
