package api

import (
	"fmt"
	"net/http"

	"github.com/GowthamiKadiyala/workout-tracker/internal/metrics"
	"github.com/GowthamiKadiyala/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
	metrics         *metrics.Manager
}

func NewScheduleHandler(scheduleService service.ScheduleService, m *metrics.Manager) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, metrics: m}
}

// ScheduleWorkoutRequest takes the date as a string: both "2006-01-02" and
// RFC 3339 timestamps are accepted.
type ScheduleWorkoutRequest struct {
	UserID string `json:"userId" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

// ScheduleWorkout godoc
// @Summary Plan a future workout
// @Tags Schedule
// @Accept json
// @Produce json
// @Param entry body ScheduleWorkoutRequest true "Schedule entry"
// @Success 201 {object} domain.ScheduleEntry
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedule [post]
func (h *ScheduleHandler) ScheduleWorkout(c *gin.Context) {
	var req ScheduleWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if !authorizeOwner(c, req.UserID) {
		return
	}

	entry, err := h.scheduleService.ScheduleWorkout(c.Request.Context(), req.UserID, req.Title, req.Date)
	if err != nil {
		respondWithServiceError(c, err, "Failed to schedule workout")
		return
	}
	h.metrics.CounterWorkoutsScheduled.Inc()

	c.JSON(http.StatusCreated, entry)
}

// ListUpcoming godoc
// @Summary List upcoming planned workouts, soonest first
// @Tags Schedule
// @Produce json
// @Param userId path string true "User's ObjectID Hex"
// @Success 200 {array} domain.ScheduleEntry
// @Failure 400 {object} gin.H "Invalid user id"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedule/{userId} [get]
func (h *ScheduleHandler) ListUpcoming(c *gin.Context) {
	entries, err := h.scheduleService.ListUpcoming(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to fetch schedule")
		return
	}
	c.JSON(http.StatusOK, entries)
}
