package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessSignIn               = "signed in successfully"
	MessageSuccessGetProfile           = "profile retrieved successfully"
	MessageSuccessUpdateProfile        = "profile updated successfully"
	MessageSuccessUploadProfilePicture = "profile picture uploaded successfully"
	MessageSuccessDeleteAccount        = "account deleted successfully"
	MessageSuccessAdminLogin           = "admin logged in successfully"

	MessageFailedSignIn               = "failed to sign in"
	MessageFailedGetProfile           = "failed to retrieve profile"
	MessageFailedUpdateProfile        = "failed to update profile"
	MessageFailedUploadProfilePicture = "failed to upload profile picture"
	MessageFailedDeleteAccount        = "failed to delete account"
	MessageFailedAdminLogin           = "failed to log in as admin"

	ErrGoogleTokenInvalid      = errors.New("google id token invalid")
	ErrGoogleAuthNotConfigured = errors.New("google sign-in not configured")
	ErrUserNotFound            = errors.New("user not found")
	ErrAdminPasswordInvalid    = errors.New("admin password invalid")
	ErrAdminLoginDisabled      = errors.New("admin login not configured")
)

type (
	GoogleSignInRequest struct {
		IDToken  string `json:"id_token" validate:"required"`
		FCMToken string `json:"fcm_token,omitempty"`
	}

	AdminLoginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	NotificationPreferencesRequest struct {
		EnableNotifications *bool  `json:"enable_notifications,omitempty"`
		ExpiryThresholdDays *int   `json:"expiry_threshold_days,omitempty" validate:"omitempty,min=0,max=365"`
		NotificationTime    string `json:"notification_time,omitempty"`
	}

	UpdateUserRequest struct {
		Name                    string                          `json:"name,omitempty"`
		Bio                     string                          `json:"bio,omitempty"`
		Hobbies                 []string                        `json:"hobbies,omitempty"`
		DietaryPreferences      string                          `json:"dietary_preferences,omitempty"`
		FCMToken                *string                         `json:"fcm_token,omitempty"`
		NotificationPreferences *NotificationPreferencesRequest `json:"notification_preferences,omitempty"`
	}

	UploadProfilePictureRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	NotificationPreferencesResponse struct {
		EnableNotifications bool   `json:"enable_notifications"`
		ExpiryThresholdDays int    `json:"expiry_threshold_days"`
		NotificationTime    string `json:"notification_time,omitempty"`
	}

	UserResponse struct {
		ID                      string                          `json:"id"`
		Email                   string                          `json:"email"`
		Name                    string                          `json:"name"`
		Bio                     string                          `json:"bio,omitempty"`
		ProfilePicture          string                          `json:"profile_picture,omitempty"`
		Hobbies                 []string                        `json:"hobbies,omitempty"`
		DietaryPreferences      string                          `json:"dietary_preferences,omitempty"`
		HasFCMToken             bool                            `json:"has_fcm_token"`
		NotificationPreferences NotificationPreferencesResponse `json:"notification_preferences"`
		CreatedAt               time.Time                       `json:"created_at"`
	}
)
