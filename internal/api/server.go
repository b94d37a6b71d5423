package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rahul/coachd/internal/agent"
	"github.com/rahul/coachd/internal/history"
	"github.com/rahul/coachd/internal/observability"
	"github.com/rahul/coachd/internal/speech"
	"github.com/rahul/coachd/internal/validation"
	"go.uber.org/zap"
)

// Server holds the handler dependencies for the HTTP surface.
type Server struct {
	Planner    agent.Brain
	Analyst    agent.Brain
	Dispatcher *validation.Dispatcher
	Store      *history.Store
	Speech     speech.Synthesizer
	Audit      *observability.AuditLogger
	Log        *zap.SugaredLogger
}

// Router builds the gin engine with all routes registered. The
// /healthz probe is unauthenticated; everything under /api requires
// the bearer token.
func (s *Server) Router(authToken string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", s.handleHealth)

	authorized := r.Group("/api")
	authorized.Use(AuthMiddleware(authToken))
	{
		authorized.POST("/workout-plan", s.handleWorkoutPlan)
		authorized.POST("/progress", s.handleProgress)
		authorized.POST("/validate", s.handleValidate)
		authorized.POST("/workouts", s.handleRecordWorkout)
		authorized.GET("/workouts/summary", s.handleSummary)
		authorized.GET("/workouts/distribution", s.handleDistribution)
		authorized.GET("/metrics", s.handleMetrics)
	}

	return r
}
