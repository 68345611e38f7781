package api

import (
	"fmt"
	"net/http"

	"github.com/GowthamiKadiyala/workout-tracker/internal/metrics"
	"github.com/GowthamiKadiyala/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	metrics        *metrics.Manager
}

func NewWorkoutHandler(workoutService service.WorkoutService, m *metrics.Manager) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, metrics: m}
}

// ExerciseRequest uses pointers so a missing or null number is rejected
// instead of silently becoming zero.
type ExerciseRequest struct {
	Name   string   `json:"name" binding:"required"`
	Sets   *int     `json:"sets" binding:"required,gte=0"`
	Reps   *int     `json:"reps" binding:"required,gte=0"`
	Weight *float64 `json:"weight" binding:"required,gte=0"`
}

type LogWorkoutRequest struct {
	UserID    string            `json:"userId" binding:"required"`
	Name      string            `json:"name" binding:"required"`
	Date      string            `json:"date"` // optional, same layouts as schedule dates
	Exercises []ExerciseRequest `json:"exercises" binding:"dive"`
}

// LogWorkout godoc
// @Summary Log a completed workout with its exercises
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body LogWorkoutRequest true "Workout"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "userId does not match the token"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if !authorizeOwner(c, req.UserID) {
		return
	}

	in := service.LogWorkoutInput{
		UserID:    req.UserID,
		Name:      req.Name,
		Exercises: make([]service.ExerciseInput, 0, len(req.Exercises)),
	}
	if req.Date != "" {
		date, err := service.ParseDate(req.Date)
		if err != nil {
			respondWithServiceError(c, err, "Failed to log workout")
			return
		}
		in.Date = date
	}
	for _, ex := range req.Exercises {
		in.Exercises = append(in.Exercises, service.ExerciseInput{
			Name:   ex.Name,
			Sets:   *ex.Sets,
			Reps:   *ex.Reps,
			Weight: *ex.Weight,
		})
	}

	workout, err := h.workoutService.LogWorkout(c.Request.Context(), in)
	if err != nil {
		respondWithServiceError(c, err, "Failed to log workout")
		return
	}
	h.metrics.CounterWorkoutsLogged.Inc()

	c.JSON(http.StatusCreated, workout)
}

// ListWorkouts godoc
// @Summary List a user's workouts, newest first
// @Tags Workouts
// @Produce json
// @Param userId path string true "User's ObjectID Hex"
// @Success 200 {array} domain.Workout
// @Failure 400 {object} gin.H "Invalid user id"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{userId} [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to fetch workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}
