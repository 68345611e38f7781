package api

import (
	"github.com/GowthamiKadiyala/workout-tracker/internal/metrics"
	"github.com/GowthamiKadiyala/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies is everything SetupRoutes wires into the handlers.
type Dependencies struct {
	AuthService     service.AuthService
	WorkoutService  service.WorkoutService
	ScheduleService service.ScheduleService
	StatsService    service.StatsService
	DB              Pinger

	Metrics *metrics.Manager
	// Gatherer backs /metrics; nil leaves the endpoint unmounted.
	Gatherer prometheus.Gatherer

	// EnforceLedger puts the ledger routes behind AuthMiddleware and rejects
	// requests made on behalf of another user.
	EnforceLedger bool
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService, deps.Metrics)
	workoutHandler := NewWorkoutHandler(deps.WorkoutService, deps.Metrics)
	scheduleHandler := NewScheduleHandler(deps.ScheduleService, deps.Metrics)
	statsHandler := NewStatsHandler(deps.StatsService, deps.Metrics)
	healthHandler := NewHealthHandler(deps.DB)

	authMiddleware := AuthMiddleware(deps.AuthService)

	router.Use(Cors(), RequestLogger(), RequestMetrics(deps.Metrics))

	router.GET("/", healthHandler.Root)
	router.GET("/ping", healthHandler.Ping)
	router.GET("/db-check", healthHandler.DBCheck)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authMiddleware, authHandler.Me)
	}

	var ledgerMiddleware []gin.HandlerFunc
	if deps.EnforceLedger {
		ledgerMiddleware = append(ledgerMiddleware, authMiddleware)
	}
	owner := OwnerParamMiddleware()

	workoutGroup := router.Group("/workouts", ledgerMiddleware...)
	{
		workoutGroup.POST("", workoutHandler.LogWorkout)
		workoutGroup.GET("/:userId", owner, workoutHandler.ListWorkouts)

		workoutGroup.GET("/stats/:userId", owner, statsHandler.GetStats)
		workoutGroup.POST("/stats/:userId/export", owner, statsHandler.ExportStats)
		workoutGroup.GET("/stats/:userId/exports", owner, statsHandler.ListExports)
	}

	scheduleGroup := router.Group("/schedule", ledgerMiddleware...)
	{
		scheduleGroup.POST("", scheduleHandler.ScheduleWorkout)
		scheduleGroup.GET("/:userId", owner, scheduleHandler.ListUpcoming)
	}
}
