package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	portssvc "github.com/Lukk17/exchangeApp/internal/core/ports/services"
	"github.com/Lukk17/exchangeApp/internal/dto"
	"github.com/Lukk17/exchangeApp/internal/middleware"
	"github.com/Lukk17/exchangeApp/internal/utils"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	ingestionService portssvc.RateIngestionSvc
	queryService     portssvc.RateQuerySvc
}

// newRateHandler creates a new rateHandler.
func newRateHandler(ingestion portssvc.RateIngestionSvc, query portssvc.RateQuerySvc) *rateHandler {
	return &rateHandler{
		ingestionService: ingestion,
		queryService:     query,
	}
}

// registerRateRoutes registers routes related to exchange rates.
// downloadMiddleware is applied to /download only (e.g. rate limiting).
func registerRateRoutes(r gin.IRouter, services *portssvc.ServiceContainer, downloadMiddleware ...gin.HandlerFunc) {
	h := newRateHandler(services.Ingestion, services.Query)

	download := append(append([]gin.HandlerFunc{}, downloadMiddleware...), h.download)
	r.GET("/download", download...)
	r.GET("/presentData", h.presentData)
}

// download godoc
// @Summary Download the current rates
// @Description Fetches the current snapshot from the exchange provider and stores it unless rates for its date are already stored
// @Tags rates
// @Produce  json
// @Success 202 "Accepted"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to store rates"
// @Failure 502 {object} map[string]string "Exchange provider unavailable or response malformed"
// @Router /download [get]
func (h *rateHandler) download(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	logger.Info("Received request to download rates")

	result, err := h.ingestionService.DownloadAndStore(c.Request.Context())
	if err != nil {
		status := statusForError(err)
		logger.Error("Failed to download rates", slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, gin.H{"error": messageForStatus(status)})
		return
	}

	logger.Info("Rates download finished",
		slog.String("date", utils.FormatDate(result.Date)),
		slog.Int("inserted", result.Inserted),
		slog.Bool("skipped", result.Skipped),
	)
	c.Status(http.StatusAccepted)
}

// presentData godoc
// @Summary Present stored rates
// @Description Returns the rates stored for a single day, or for the days strictly between two dates (boundaries excluded)
// @Tags rates
// @Produce  json
// @Param   date query string true "yyyy-MM-dd or yyyy-MM-dd:yyyy-MM-dd"
// @Success 200 {array} dto.RateDTO
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to retrieve rates"
// @Router /presentData [get]
func (h *rateHandler) presentData(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var query dto.PresentDataQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for presentData", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("date_spec", query.Date))
	logger.Info("Received request to present rates")

	rates, err := h.queryService.GetRates(c.Request.Context(), query.Date)
	if err != nil {
		status := statusForError(err)
		if status < http.StatusInternalServerError {
			logger.Warn("Invalid date for presentData", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get rates from service", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": messageForStatus(status)})
		}
		return
	}

	logger.Info("Rates retrieved successfully", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, rates)
}

// statusForError maps the apperrors taxonomy to an HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrDateParse), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNetwork), errors.Is(err, apperrors.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageForStatus(status int) string {
	switch status {
	case http.StatusBadGateway:
		return "Exchange provider unavailable"
	case http.StatusNotFound:
		return "Not found"
	default:
		return "Internal server error"
	}
}
