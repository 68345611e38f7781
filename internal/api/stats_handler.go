package api

import (
	"net/http"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/metrics"
	"github.com/GowthamiKadiyala/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
	metrics      *metrics.Manager
}

func NewStatsHandler(statsService service.StatsService, m *metrics.Manager) *StatsHandler {
	return &StatsHandler{statsService: statsService, metrics: m}
}

type StatsExportResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GetStats godoc
// @Summary Volume series of the user's oldest workouts
// @Tags Stats
// @Produce json
// @Param userId path string true "User's ObjectID Hex"
// @Success 200 {array} domain.VolumePoint
// @Failure 400 {object} gin.H "Invalid user id"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/stats/{userId} [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	points, err := h.statsService.ComputeStats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, points)
}

// ExportStats godoc
// @Summary Export the volume series as CSV
// @Description Uploads the series to object storage and returns a temporary download URL.
// @Tags Stats
// @Produce json
// @Param userId path string true "User's ObjectID Hex"
// @Success 201 {object} StatsExportResponse
// @Failure 400 {object} gin.H "Invalid user id"
// @Failure 503 {object} gin.H "Export storage not configured"
// @Router /workouts/stats/{userId}/export [post]
func (h *StatsHandler) ExportStats(c *gin.Context) {
	res, err := h.statsService.Export(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to export stats")
		return
	}
	h.metrics.CounterStatsExports.Inc()

	c.JSON(http.StatusCreated, StatsExportResponse{
		URL:       res.URL,
		Key:       res.Export.S3ObjectKey,
		ExpiresAt: res.ExpiresAt,
	})
}

// ListExports returns the user's previous exports, most recent first.
func (h *StatsHandler) ListExports(c *gin.Context) {
	exports, err := h.statsService.ListExports(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to fetch exports")
		return
	}
	c.JSON(http.StatusOK, exports)
}
