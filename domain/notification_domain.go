package domain

import (
	"errors"
)

// DefaultExpiryThresholdDays applies when a user never configured a
// threshold. Both the batch sweep and the per-request check read this
// constant so the default cannot drift between the two.
const DefaultExpiryThresholdDays = 2

const PushTypeExpiry = "expiry"

var (
	MessageSuccessTriggerCheck = "notification check completed"
	MessageSuccessCheckNow     = "expiry check completed"
	MessageSuccessDebug        = "notification debug info retrieved"
	MessageSuccessTestPush     = "test notification sent"

	MessageFailedTriggerCheck = "Failed to trigger notification check"
	MessageFailedCheckNow     = "failed to run expiry check"
	MessageFailedDebug        = "failed to retrieve notification debug info"
	MessageFailedTestPush     = "failed to send test notification"

	ErrPushNotConfigured = errors.New("push delivery is not configured")
	ErrNoFCMToken        = errors.New("user has no push token")
)

type (
	PushMessage struct {
		Title string            `json:"title"`
		Body  string            `json:"body"`
		Data  map[string]string `json:"data"`
		Token string            `json:"token"`
	}

	// ExpiryCheckSummary aggregates the per-user outcomes of one batch run.
	ExpiryCheckSummary struct {
		UsersProcessed    int `json:"users_processed"`
		NotificationsSent int `json:"notifications_sent"`
		Errors            int `json:"errors"`
	}

	CheckNowResponse struct {
		Message          string `json:"message"`
		ItemsExpiring    int    `json:"items_expiring"`
		NotificationSent bool   `json:"notification_sent"`
	}

	TestPushRequest struct {
		FCMToken string `json:"fcm_token" validate:"required"`
	}

	TestPushResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	DebugUser struct {
		Email           string `json:"email"`
		HasFCMToken     bool   `json:"has_fcm_token"`
		TotalItems      int    `json:"total_items"`
		ItemsWithExpiry int    `json:"items_with_expiry"`
		ExpiryThreshold int    `json:"expiry_threshold"`
	}

	DebugResponse struct {
		FirebaseInitialized  bool        `json:"firebase_initialized"`
		TotalUsersWithTokens int         `json:"total_users_with_tokens"`
		Users                []DebugUser `json:"users"`
	}
)
