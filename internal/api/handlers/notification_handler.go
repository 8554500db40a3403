package handlers

import (
	"fmt"

	"fridgetrack/domain"
	"fridgetrack/internal/api/presenters"
	"fridgetrack/pkg/notification"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		TriggerCheck(c *fiber.Ctx) error
		CheckNow(c *fiber.Ctx) error
		Debug(c *fiber.Ctx) error
		TestPush(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
		validator           *validator.Validate
	}
)

func NewNotificationHandler(notificationService notification.NotificationService, validator *validator.Validate) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
		validator:           validator,
	}
}

// TriggerCheck runs the batch synchronously. Failures inside the batch are
// already absorbed by the service, so this responds 200 unless the service
// itself blows up.
func (h *notificationHandler) TriggerCheck(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTriggerCheck, fmt.Errorf("%v", r))
		}
	}()

	summary := h.notificationService.RunExpiryCheck(c.Context())

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessTriggerCheck)
}

func (h *notificationHandler) CheckNow(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.notificationService.CheckUserNow(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCheckNow, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckNow)
}

func (h *notificationHandler) Debug(c *fiber.Ctx) error {
	res, err := h.notificationService.DebugSnapshot(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDebug, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDebug)
}

func (h *notificationHandler) TestPush(c *fiber.Ctx) error {
	req := new(domain.TestPushRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTestPush, err)
	}

	res, err := h.notificationService.SendTestPush(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTestPush, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessTestPush)
}
