package user

import (
	"context"
	"errors"
	"fmt"

	"fridgetrack/domain"
	"fridgetrack/entities"
	"fridgetrack/internal/utils"
	"fridgetrack/internal/utils/storage"
	"fridgetrack/pkg/fridge"
	"fridgetrack/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

type (
	UserService interface {
		SignInWithGoogle(ctx context.Context, req domain.GoogleSignInRequest) (domain.AuthResponse, error)
		AdminLogin(ctx context.Context, req domain.AdminLoginRequest) (domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error)
		UploadProfilePicture(ctx context.Context, req domain.UploadProfilePictureRequest, userID string) (string, error)
		DeleteAccount(ctx context.Context, userID string) error
	}

	userService struct {
		userRepository   UserRepository
		fridgeRepository fridge.FridgeRepository
		jwtService       jwt.JWTService
		s3               storage.AwsS3
	}
)

func NewUserService(
	userRepository UserRepository,
	fridgeRepository fridge.FridgeRepository,
	jwtService jwt.JWTService,
	s3 storage.AwsS3,
) UserService {
	return &userService{
		userRepository:   userRepository,
		fridgeRepository: fridgeRepository,
		jwtService:       jwtService,
		s3:               s3,
	}
}

func (s *userService) SignInWithGoogle(ctx context.Context, req domain.GoogleSignInRequest) (domain.AuthResponse, error) {
	clientID := utils.GetConfig("GOOGLE_CLIENT_ID")
	if clientID == "" {
		return domain.AuthResponse{}, domain.ErrGoogleAuthNotConfigured
	}

	payload, err := idtoken.Validate(ctx, req.IDToken, clientID)
	if err != nil {
		return domain.AuthResponse{}, domain.ErrGoogleTokenInvalid
	}

	googleID := payload.Subject
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	user, err := s.userRepository.GetByGoogleID(ctx, googleID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, err
		}
		user = &entities.User{
			ID:             uuid.New(),
			GoogleID:       googleID,
			Email:          email,
			Name:           name,
			ProfilePicture: picture,
			NotificationPreferences: entities.NotificationPreferences{
				EnableNotifications: true,
				ExpiryThresholdDays: domain.DefaultExpiryThresholdDays,
			},
		}
		if err := s.userRepository.Create(ctx, user); err != nil {
			return domain.AuthResponse{}, err
		}
	}

	if req.FCMToken != "" && req.FCMToken != user.FCMToken {
		user.FCMToken = req.FCMToken
		if err := s.userRepository.Update(ctx, user); err != nil {
			return domain.AuthResponse{}, err
		}
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser)
	return domain.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) AdminLogin(ctx context.Context, req domain.AdminLoginRequest) (domain.AuthResponse, error) {
	hash := utils.GetConfig("ADMIN_PASSWORD_HASH")
	if hash == "" {
		return domain.AuthResponse{}, domain.ErrAdminLoginDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrAdminPasswordInvalid
	}

	token := s.jwtService.GenerateTokenUser("admin", domain.RoleAdmin)
	return domain.AuthResponse{Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Hobbies != nil {
		user.Hobbies = req.Hobbies
	}
	if req.DietaryPreferences != "" {
		user.DietaryPreferences = req.DietaryPreferences
	}
	if req.FCMToken != nil {
		user.FCMToken = *req.FCMToken
	}
	if prefs := req.NotificationPreferences; prefs != nil {
		if prefs.EnableNotifications != nil {
			user.NotificationPreferences.EnableNotifications = *prefs.EnableNotifications
		}
		if prefs.ExpiryThresholdDays != nil {
			user.NotificationPreferences.ExpiryThresholdDays = *prefs.ExpiryThresholdDays
		}
		if prefs.NotificationTime != "" {
			user.NotificationPreferences.NotificationTime = prefs.NotificationTime
		}
	}

	if err := s.userRepository.Update(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UploadProfilePicture(ctx context.Context, req domain.UploadProfilePictureRequest, userID string) (string, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	fileName := fmt.Sprintf("profile-%s", user.ID.String())
	var objectKey string
	if existingKey := s.s3.GetObjectKeyFromLink(user.ProfilePicture); existingKey != "" {
		objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "profiles", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	user.ProfilePicture = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.Update(ctx, user); err != nil {
		return "", err
	}
	return user.ProfilePicture, nil
}

// DeleteAccount removes the user, their food items and any stored images.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if objectKey := s.s3.GetObjectKeyFromLink(user.ProfilePicture); objectKey != "" {
		_ = s.s3.DeleteFile(objectKey)
	}

	if err := s.fridgeRepository.DeleteFoodItemsByUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepository.Delete(ctx, userID)
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		Bio:                user.Bio,
		ProfilePicture:     user.ProfilePicture,
		Hobbies:            user.Hobbies,
		DietaryPreferences: user.DietaryPreferences,
		HasFCMToken:        user.FCMToken != "",
		NotificationPreferences: domain.NotificationPreferencesResponse{
			EnableNotifications: user.NotificationPreferences.EnableNotifications,
			ExpiryThresholdDays: user.NotificationPreferences.ExpiryThresholdDays,
			NotificationTime:    user.NotificationPreferences.NotificationTime,
		},
		CreatedAt: user.CreatedAt,
	}
}
