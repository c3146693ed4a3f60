package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/service"
	"github.com/spec-kit/triage-service/pkg/util"
)

// ClassifyHandler exposes the classification assist endpoint.
type ClassifyHandler struct {
	service *service.ClassificationService
}

// NewClassifyHandler constructs handler.
func NewClassifyHandler(classificationService *service.ClassificationService) *ClassifyHandler {
	return &ClassifyHandler{service: classificationService}
}

// Classify POST /tickets/classify.
func (h *ClassifyHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return util.NewValidationError("description required", nil)
	}

	suggestion, err := h.service.Suggest(c.UserContext(), req.Description)
	if err != nil {
		return err
	}
	return c.JSON(dto.ClassifyResponse{
		SuggestedCategory: suggestion.SuggestedCategory,
		SuggestedPriority: suggestion.SuggestedPriority,
	})
}
