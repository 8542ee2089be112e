// Package http holds the chi handlers of the preview server API.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/AAlmeidaM/extremadura-en-datos/internal/errors"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/ine"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/services"
)

// DataServiceInterface is the service surface the handler depends on.
type DataServiceInterface interface {
	ListIndicators(ctx context.Context) ([]services.Indicator, error)
	GetDataset(ctx context.Context, tableID string) (series.Dataset, error)
	UpcomingReleases(ctx context.Context, limit int) ([]ine.ReleaseEvent, error)
}

// DataHandler handles the /api/data routes.
type DataHandler struct {
	service DataServiceInterface
	logger  *slog.Logger
}

// NewDataHandler creates a data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger) *DataHandler {
	return &DataHandler{
		service: service,
		logger:  logger.With(slog.String("component", "data_handler")),
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/indicators", h.GetIndicators)
	r.Get("/indicators/{tableID}", h.GetDataset)
	r.Get("/releases", h.GetReleases)

	return r
}

// GetIndicators returns every catalog entry with its latest observation.
func (h *DataHandler) GetIndicators(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.service.ListIndicators(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, indicators)
}

// GetDataset returns the saved observations of one table.
func (h *DataHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableID")
	if _, err := strconv.Atoi(tableID); err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			"INVALID_PARAMETER", "Table id must be numeric", tableID))
		return
	}

	dataset, err := h.service.GetDataset(r.Context(), tableID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, dataset)
}

// GetReleases returns the upcoming INE publication dates. The optional
// limit query parameter caps the list.
func (h *DataHandler) GetReleases(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.renderError(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
				"INVALID_PARAMETER", "limit must be a non-negative integer", raw))
			return
		}
		limit = parsed
	}

	events, err := h.service.UpcomingReleases(r.Context(), limit)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, events)
}

func (h *DataHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.InternalServerError(err)
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}

	if err := render.Render(w, r, apiErr); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", err.Error()))
	}
}
