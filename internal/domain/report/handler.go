package report

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/SabrinaDeveloper/mindtracking-api/internal/platform/storage"
)

// Renderer turns an assembled report into a stored artifact and returns
// its location. Implemented by the render package.
type Renderer interface {
	Render(ctx context.Context, rep *Report) (string, error)
}

type Handler struct {
	svc      *Service
	renderer Renderer
	store    storage.Store
	logger   zerolog.Logger

	// exposeErrors includes failure detail in responses; development only.
	exposeErrors bool
}

func NewHandler(svc *Service, renderer Renderer, store storage.Store, logger zerolog.Logger, exposeErrors bool) *Handler {
	return &Handler{
		svc:          svc,
		renderer:     renderer,
		store:        store,
		logger:       logger,
		exposeErrors: exposeErrors,
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/report", h.GenerateReport)
}

// GenerateReport runs the full pipeline for one patient: fetch,
// normalize, render, stream. The attachment disposition makes user agents
// download the PDF instead of rendering it inline.
func (h *Handler) GenerateReport(c echo.Context) error {
	ctx := c.Request().Context()
	patientID := c.Param("id")
	rid, _ := c.Get("request_id").(string)

	rep, err := h.svc.Assemble(ctx, patientID)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "patient not found"})
	}
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", rid).Str("patient_id", patientID).Msg("assemble report failed")
		return h.internalError(c, err)
	}

	location, err := h.renderer.Render(ctx, rep)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", rid).Str("patient_id", patientID).Msg("render report failed")
		return h.internalError(c, err)
	}

	filename := FileName(rep.Identity.Name)

	rc, err := h.store.Open(ctx, location)
	if err != nil {
		// The artifact was generated; only delivery failed. Point the
		// caller at the on-disk location instead of reporting a hard
		// failure.
		h.logger.Warn().Err(err).Str("request_id", rid).Str("location", location).Msg("report generated but could not be opened for delivery")
		return c.JSON(http.StatusOK, map[string]any{
			"success":  false,
			"message":  "report generated but download failed",
			"location": location,
		})
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Stream(http.StatusOK, "application/pdf", rc)
}

func (h *Handler) internalError(c echo.Context, err error) error {
	body := map[string]any{
		"success": false,
		"message": "internal server error",
	}
	if h.exposeErrors {
		body["error"] = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}
