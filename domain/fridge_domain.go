package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFoodItem    = "food item added successfully"
	MessageSuccessUpdateFoodItem = "food item updated successfully"
	MessageSuccessDeleteFoodItem = "food item deleted successfully"
	MessageSuccessGetFridge      = "fridge retrieved successfully"
	MessageSuccessLogBarcode     = "product logged from barcode successfully"
	MessageSuccessLogVision      = "product logged from image successfully"
	MessageSuccessGetFoodTypes   = "food types retrieved successfully"
	MessageSuccessAddFoodType    = "food type added successfully"

	MessageFailedAddFoodItem    = "failed to add food item"
	MessageFailedUpdateFoodItem = "failed to update food item"
	MessageFailedDeleteFoodItem = "failed to delete food item"
	MessageFailedGetFridge      = "failed to retrieve fridge"
	MessageFailedLogBarcode     = "failed to log product from barcode"
	MessageFailedLogVision      = "failed to log product from image"
	MessageFailedGetFoodTypes   = "failed to retrieve food types"
	MessageFailedAddFoodType    = "failed to add food type"

	ErrFoodItemNotFound       = errors.New("food item not found")
	ErrFoodTypeNotFound       = errors.New("food type not found")
	ErrFoodTypeMissing        = errors.New("food item references a missing food type")
	ErrInvalidPercentLeft     = errors.New("percent left must be between 0 and 100")
	ErrInvalidExpirationDate  = errors.New("invalid expiration date")
	ErrUnauthorizedAccess     = errors.New("unauthorized access to food item")
	ErrProductNotFound        = errors.New("product not found for barcode")
	ErrProductLookupFailed    = errors.New("product lookup failed")
	ErrVisionProcessingFailed = errors.New("vision processing failed")
)

type (
	Nutrients struct {
		Calories      string `json:"calories,omitempty"`
		Protein       string `json:"protein,omitempty"`
		Carbohydrates string `json:"carbohydrates,omitempty"`
		Fat           string `json:"fat,omitempty"`
		Fiber         string `json:"fiber,omitempty"`
		Sugar         string `json:"sugar,omitempty"`
		Salt          string `json:"salt,omitempty"`
	}

	// AddFoodItemRequest logs an item against an existing type (type_id) or
	// lazily creates a new one (name + shelf_life_days).
	AddFoodItemRequest struct {
		TypeID         string `json:"type_id,omitempty" validate:"omitempty,uuid"`
		Name           string `json:"name,omitempty"`
		ShelfLifeDays  int    `json:"shelf_life_days,omitempty" validate:"omitempty,min=0"`
		ExpirationDate string `json:"expiration_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
		PercentLeft    *int   `json:"percent_left,omitempty" validate:"omitempty,min=0,max=100"`
	}

	UpdateFoodItemRequest struct {
		ExpirationDate string `json:"expiration_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
		PercentLeft    *int   `json:"percent_left,omitempty" validate:"omitempty,min=0,max=100"`
	}

	CreateFoodTypeRequest struct {
		Name          string    `json:"name" validate:"required"`
		ShelfLifeDays int       `json:"shelf_life_days" validate:"min=0"`
		Barcode       string    `json:"barcode,omitempty"`
		Nutrients     Nutrients `json:"nutrients,omitempty"`
	}

	BarcodeLogRequest struct {
		Barcode        string `json:"barcode" validate:"required"`
		ExpirationDate string `json:"expiration_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	}

	VisionLogRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodItemView struct {
		ID             string     `json:"id"`
		ExpirationDate *time.Time `json:"expiration_date,omitempty"`
		PercentLeft    int        `json:"percent_left"`
		CreatedAt      time.Time  `json:"created_at"`
	}

	FoodTypeView struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		ShelfLifeDays int       `json:"shelf_life_days"`
		Barcode       string    `json:"barcode,omitempty"`
		Nutrients     Nutrients `json:"nutrients"`
	}

	// FridgeItem is the non-persisted read-time join of an item and its type.
	FridgeItem struct {
		FoodItem FoodItemView `json:"food_item"`
		FoodType FoodTypeView `json:"food_type"`
	}

	// VisionAnalysis is the parsed Gemini verdict for a food photo.
	VisionAnalysis struct {
		Name          string    `json:"name"`
		ShelfLifeDays int       `json:"shelfLifeDays"`
		Confidence    float64   `json:"confidenceScore"`
		Nutrients     Nutrients `json:"nutrients"`
	}
)
