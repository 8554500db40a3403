package notification

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"fridgetrack/domain"
	"fridgetrack/entities"
	"fridgetrack/pkg/fridge"
	"fridgetrack/pkg/user"
)

type (
	NotificationService interface {
		// RunExpiryCheck sweeps every notifiable user, sends at most one
		// notification per user, and returns the aggregated outcome.
		RunExpiryCheck(ctx context.Context) domain.ExpiryCheckSummary
		TriggerNotificationCheck(ctx context.Context)
		CheckUserNow(ctx context.Context, userID string) (domain.CheckNowResponse, error)
		DebugSnapshot(ctx context.Context) (domain.DebugResponse, error)
		SendTestPush(ctx context.Context, req domain.TestPushRequest) (domain.TestPushResponse, error)
	}

	notificationService struct {
		userRepository   user.UserRepository
		fridgeRepository fridge.FridgeRepository
		pushSender       PushSender
		mailSender       MailSender
	}
)

func NewNotificationService(userRepository user.UserRepository, fridgeRepository fridge.FridgeRepository, pushSender PushSender, mailSender MailSender) NotificationService {
	return &notificationService{
		userRepository:   userRepository,
		fridgeRepository: fridgeRepository,
		pushSender:       pushSender,
		mailSender:       mailSender,
	}
}

// RunExpiryCheck is the batch entry point. A failure for one user is logged
// and counted without touching the other users, and a failure to even list
// the users yields an all-zero summary. It never returns an error.
func (s *notificationService) RunExpiryCheck(ctx context.Context) domain.ExpiryCheckSummary {
	summary := domain.ExpiryCheckSummary{}

	users, err := s.userRepository.GetNotifiableUsers(ctx)
	if err != nil {
		log.Printf("expiry check: failed to list users: %v", err)
		return summary
	}

	now := time.Now()
	for _, u := range users {
		summary.UsersProcessed++

		sent, err := s.notifyUser(ctx, u, now)
		if err != nil {
			log.Printf("expiry check: user %s: %v", u.ID, err)
			summary.Errors++
			continue
		}
		if sent {
			summary.NotificationsSent++
		}
	}

	log.Printf("expiry check: processed=%d sent=%d errors=%d",
		summary.UsersProcessed, summary.NotificationsSent, summary.Errors)

	return summary
}

// TriggerNotificationCheck is the synchronous admin-facing variant of the
// batch run.
func (s *notificationService) TriggerNotificationCheck(ctx context.Context) {
	s.RunExpiryCheck(ctx)
}

// notifyUser checks one user's fridge and delivers at most one notification
// covering all of their expiring items.
func (s *notificationService) notifyUser(ctx context.Context, u *entities.User, now time.Time) (bool, error) {
	threshold := u.NotificationPreferences.ExpiryThresholdDays
	if threshold <= 0 {
		threshold = domain.DefaultExpiryThresholdDays
	}

	items, err := s.fridgeRepository.GetFridgeItems(ctx, u.ID.String())
	if err != nil {
		return false, err
	}

	expiring := filterExpiringItems(items, threshold, now)
	if len(expiring) == 0 {
		return false, nil
	}

	if u.FCMToken != "" {
		message := buildExpiryMessage(expiring, u.FCMToken)
		if err := s.pushSender.Send(ctx, message); err != nil {
			return false, err
		}
		return true, nil
	}

	if u.NotificationPreferences.EnableNotifications && u.Email != "" {
		if err := s.sendExpiryMail(u.Email, expiring); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

func (s *notificationService) CheckUserNow(ctx context.Context, userID string) (domain.CheckNowResponse, error) {
	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return domain.CheckNowResponse{}, err
	}

	threshold := u.NotificationPreferences.ExpiryThresholdDays
	if threshold <= 0 {
		threshold = domain.DefaultExpiryThresholdDays
	}

	items, err := s.fridgeRepository.GetFridgeItems(ctx, userID)
	if err != nil {
		return domain.CheckNowResponse{}, err
	}

	expiring := filterExpiringItems(items, threshold, time.Now())
	response := domain.CheckNowResponse{
		Message:       domain.MessageSuccessCheckNow,
		ItemsExpiring: len(expiring),
	}

	if len(expiring) == 0 || u.FCMToken == "" {
		return response, nil
	}

	if err := s.pushSender.Send(ctx, buildExpiryMessage(expiring, u.FCMToken)); err != nil {
		return response, err
	}

	response.NotificationSent = true
	return response, nil
}

func (s *notificationService) DebugSnapshot(ctx context.Context) (domain.DebugResponse, error) {
	users, err := s.userRepository.GetNotifiableUsers(ctx)
	if err != nil {
		return domain.DebugResponse{}, err
	}

	response := domain.DebugResponse{
		FirebaseInitialized: s.pushSender.IsInitialized(),
		Users:               make([]domain.DebugUser, 0, len(users)),
	}

	for _, u := range users {
		if u.FCMToken != "" {
			response.TotalUsersWithTokens++
		}

		threshold := u.NotificationPreferences.ExpiryThresholdDays
		if threshold <= 0 {
			threshold = domain.DefaultExpiryThresholdDays
		}

		items, err := s.fridgeRepository.GetFridgeItems(ctx, u.ID.String())
		if err != nil {
			return domain.DebugResponse{}, err
		}

		itemsWithExpiry := 0
		for _, item := range items {
			if item.ExpirationDate != nil {
				itemsWithExpiry++
			}
		}

		response.Users = append(response.Users, domain.DebugUser{
			Email:           u.Email,
			HasFCMToken:     u.FCMToken != "",
			TotalItems:      len(items),
			ItemsWithExpiry: itemsWithExpiry,
			ExpiryThreshold: threshold,
		})
	}

	return response, nil
}

func (s *notificationService) SendTestPush(ctx context.Context, req domain.TestPushRequest) (domain.TestPushResponse, error) {
	err := s.pushSender.Send(ctx, domain.PushMessage{
		Title: "Test Notification",
		Body:  "Push delivery is working",
		Data:  map[string]string{"type": "test"},
		Token: req.FCMToken,
	})
	if err != nil {
		return domain.TestPushResponse{}, err
	}
	return domain.TestPushResponse{Success: true, Message: domain.MessageSuccessTestPush}, nil
}

// filterExpiringItems keeps the items whose expiration date falls within
// threshold days of now. Calendar dates are compared so the result does
// not depend on the time of day the check runs, and already expired items
// are included.
func filterExpiringItems(items []*entities.FoodItem, threshold int, now time.Time) []*entities.FoodItem {
	var expiring []*entities.FoodItem
	for _, item := range items {
		if item.ExpirationDate == nil {
			continue
		}
		if daysUntil(*item.ExpirationDate, now) <= threshold {
			expiring = append(expiring, item)
		}
	}
	return expiring
}

func daysUntil(date, now time.Time) int {
	return int(calendarDay(date).Sub(calendarDay(now)).Hours() / 24)
}

// calendarDay pins a timestamp to its own year, month and day at UTC
// midnight. Expiration dates are parsed in UTC while the server clock may
// run in any location, so both sides must be reduced to plain calendar
// dates before differencing.
func calendarDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// buildExpiryMessage folds all expiring items into a single push message.
func buildExpiryMessage(expiring []*entities.FoodItem, token string) domain.PushMessage {
	return domain.PushMessage{
		Title: expiryTitle(len(expiring)),
		Body:  strings.Join(itemNames(expiring), ", "),
		Data: map[string]string{
			"itemCount": strconv.Itoa(len(expiring)),
			"type":      domain.PushTypeExpiry,
		},
		Token: token,
	}
}

func expiryTitle(count int) string {
	if count == 1 {
		return "1 Item Expiring Soon"
	}
	return fmt.Sprintf("%d Items Expiring Soon", count)
}

func itemNames(items []*entities.FoodItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		name := "Unknown Item"
		if item.Type != nil {
			name = item.Type.Name
		}
		names = append(names, name)
	}
	return names
}

func (s *notificationService) sendExpiryMail(email string, expiring []*entities.FoodItem) error {
	body := fmt.Sprintf(
		"<p>The following items in your fridge are expiring soon:</p><p>%s</p>",
		strings.Join(itemNames(expiring), ", "),
	)
	return s.mailSender.Send(email, expiryTitle(len(expiring)), body)
}
