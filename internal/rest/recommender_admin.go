package rest

import (
	"context"
	"net/http"

	"studyRecommender/domain"

	"github.com/labstack/echo/v4"
)

type RecommenderSettingsService interface {
	GetSettings(ctx context.Context) (domain.RecommenderSettings, error)
	UpdateSettings(ctx context.Context, settings domain.RecommenderSettings) (domain.RecommenderSettings, error)
}

type RecommenderAdminHandler struct {
	settingsService RecommenderSettingsService
}

func NewRecommenderAdminHandler(settingsService RecommenderSettingsService) *RecommenderAdminHandler {
	return &RecommenderAdminHandler{settingsService: settingsService}
}

// GET /api/v1/admin/recommender/config
func (h *RecommenderAdminHandler) GetConfig(c echo.Context) error {
	settings, err := h.settingsService.GetSettings(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, settings)
}

// PUT /api/v1/admin/recommender/config
// body: RecommenderSettings JSON, zero fields keep defaults
func (h *RecommenderAdminHandler) UpdateConfig(c echo.Context) error {
	var body domain.RecommenderSettings
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	settings, err := h.settingsService.UpdateSettings(c.Request().Context(), body)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, settings)
}
