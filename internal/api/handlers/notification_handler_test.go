package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"fridgetrack/domain"
	"fridgetrack/internal/api/presenters"
	"fridgetrack/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type stubNotificationService struct {
	panicOnRun  bool
	summary     domain.ExpiryCheckSummary
	testPushErr error
}

func (s *stubNotificationService) RunExpiryCheck(ctx context.Context) domain.ExpiryCheckSummary {
	if s.panicOnRun {
		panic("scheduler exploded")
	}
	return s.summary
}
func (s *stubNotificationService) TriggerNotificationCheck(ctx context.Context) {}
func (s *stubNotificationService) CheckUserNow(ctx context.Context, userID string) (domain.CheckNowResponse, error) {
	return domain.CheckNowResponse{}, nil
}
func (s *stubNotificationService) DebugSnapshot(ctx context.Context) (domain.DebugResponse, error) {
	return domain.DebugResponse{}, nil
}
func (s *stubNotificationService) SendTestPush(ctx context.Context, req domain.TestPushRequest) (domain.TestPushResponse, error) {
	if s.testPushErr != nil {
		return domain.TestPushResponse{}, s.testPushErr
	}
	return domain.TestPushResponse{Success: true, Message: domain.MessageSuccessTestPush}, nil
}

func newTriggerApp(service *stubNotificationService) *fiber.App {
	utils.InitValidator()
	handler := NewNotificationHandler(service, utils.Validate)

	app := fiber.New()
	app.Post("/trigger", handler.TriggerCheck)
	return app
}

func TestTriggerCheckRespondsOK(t *testing.T) {
	service := &stubNotificationService{
		summary: domain.ExpiryCheckSummary{UsersProcessed: 3, NotificationsSent: 2, Errors: 1},
	}
	app := newTriggerApp(service)

	resp, err := app.Test(httptest.NewRequest("POST", "/trigger", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body presenters.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success response even with per-user errors in the summary")
	}
}

func TestTriggerCheckPanicYieldsServerError(t *testing.T) {
	app := newTriggerApp(&stubNotificationService{panicOnRun: true})

	resp, err := app.Test(httptest.NewRequest("POST", "/trigger", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var body presenters.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Message != domain.MessageFailedTriggerCheck {
		t.Fatalf("expected %q, got %q", domain.MessageFailedTriggerCheck, body.Message)
	}
}

func newTestPushApp(service *stubNotificationService) *fiber.App {
	utils.InitValidator()
	handler := NewNotificationHandler(service, utils.Validate)

	app := fiber.New()
	app.Post("/test-simple", handler.TestPush)
	return app
}

func TestTestPushDeliveryFailureYieldsServerError(t *testing.T) {
	app := newTestPushApp(&stubNotificationService{testPushErr: errors.New("fcm unreachable")})

	req := httptest.NewRequest("POST", "/test-simple", strings.NewReader(`{"fcm_token":"token-1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var body presenters.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Success {
		t.Fatal("expected error response for failed delivery")
	}
	if body.Message != domain.MessageFailedTestPush {
		t.Fatalf("expected %q, got %q", domain.MessageFailedTestPush, body.Message)
	}
}

func TestTestPushRespondsOK(t *testing.T) {
	app := newTestPushApp(&stubNotificationService{})

	req := httptest.NewRequest("POST", "/test-simple", strings.NewReader(`{"fcm_token":"token-1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
