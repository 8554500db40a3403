package notification

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"fridgetrack/domain"
	"fridgetrack/internal/utils"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type (
	// PushSender delivers a single push message. Implementations must be
	// safe for concurrent use.
	PushSender interface {
		Send(ctx context.Context, message domain.PushMessage) error
		IsInitialized() bool
	}

	fcmSender struct {
		client *messaging.Client
	}

	// disabledSender stands in when Firebase credentials are absent or
	// malformed. Delivery attempts fail softly instead of crashing startup.
	disabledSender struct{}
)

// NewPushSender builds an FCM-backed sender from the FCM_KEY_DATA credential
// blob. Any initialization failure logs once and degrades to a disabled
// sender rather than aborting the process.
func NewPushSender(ctx context.Context) PushSender {
	keyDataString := utils.GetConfig("FCM_KEY_DATA")
	if keyDataString == "" {
		log.Println("FCM_KEY_DATA not set, push delivery disabled")
		return &disabledSender{}
	}

	var parsedKeyData map[string]interface{}
	if err := json.Unmarshal([]byte(keyDataString), &parsedKeyData); err != nil {
		log.Printf("error unmarshalling FCM key data, push delivery disabled: %v", err)
		return &disabledSender{}
	}

	// Private keys pasted into env vars carry escaped newlines.
	if privateKey, ok := parsedKeyData["private_key"].(string); ok {
		parsedKeyData["private_key"] = strings.ReplaceAll(privateKey, "\\n", "\n")
	}

	parsedKeyDataString, err := json.Marshal(parsedKeyData)
	if err != nil {
		log.Printf("error marshalling FCM key data, push delivery disabled: %v", err)
		return &disabledSender{}
	}

	opt := option.WithCredentialsJSON(parsedKeyDataString)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Printf("error initializing firebase app, push delivery disabled: %v", err)
		return &disabledSender{}
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("error getting messaging client, push delivery disabled: %v", err)
		return &disabledSender{}
	}

	return &fcmSender{client: client}
}

func (s *fcmSender) Send(ctx context.Context, message domain.PushMessage) error {
	_, err := s.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: message.Title,
			Body:  message.Body,
		},
		Data:  message.Data,
		Token: message.Token,
	})
	return err
}

func (s *fcmSender) IsInitialized() bool {
	return true
}

func (s *disabledSender) Send(ctx context.Context, message domain.PushMessage) error {
	return domain.ErrPushNotConfigured
}

func (s *disabledSender) IsInitialized() bool {
	return false
}
