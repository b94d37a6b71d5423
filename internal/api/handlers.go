package api

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rahul/coachd/internal/agent"
	"github.com/rahul/coachd/internal/observability"
	"go.uber.org/zap"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input" binding:"required"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	*agent.Reply
	AudioBase64 string `json:"audio_base64,omitempty"`
}

type recordWorkoutRequest struct {
	WorkoutType string `json:"workout_type" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleWorkoutPlan(c *gin.Context) {
	s.handleChat(c, s.Planner)
}

func (s *Server) handleProgress(c *gin.Context) {
	s.handleChat(c, s.Analyst)
}

func (s *Server) handleChat(c *gin.Context, brain agent.Brain) {
	var body chatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.handleError(c, err, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.SessionID == "" {
		body.SessionID = uuid.NewString()
	}

	reply, err := brain.Think(c.Request.Context(), body.SessionID, body.Input)
	if err != nil {
		s.handleError(c, err, http.StatusInternalServerError, "Agent request failed")
		return
	}

	resp := chatResponse{SessionID: body.SessionID, Reply: reply}

	// Audio is best-effort: a synthesis failure never fails the reply.
	if s.Speech != nil {
		audio, err := s.Speech.Synthesize(c.Request.Context(), reply.Text)
		if err != nil {
			s.requestLog(c).Warnw("speech synthesis failed", "error", err)
		} else {
			resp.AudioBase64 = base64.StdEncoding.EncodeToString(audio)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleValidate exposes the validation dispatcher directly. The
// dispatcher never errors; failures are carried in the result body.
func (s *Server) handleValidate(c *gin.Context) {
	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		s.handleError(c, err, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := s.Dispatcher.Dispatch(input)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRecordWorkout(c *gin.Context) {
	var body recordWorkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.handleError(c, err, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := s.Store.RecordWorkout(body.WorkoutType, time.Now())
	if result.Status == "error" {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	s.Audit.Log(observability.Event{
		Type:          observability.EventWorkoutRecorded,
		CorrelationID: c.GetString("request_id"),
		Data:          map[string]any{"workout_type": body.WorkoutType},
	})
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.Store.GetSummary())
}

func (s *Server) handleDistribution(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"distribution": s.Store.Distribution()})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.Dispatcher.Metrics())
}

func (s *Server) handleError(c *gin.Context, err error, status int, msg string) {
	s.requestLog(c).Errorw(msg, "error", err)
	c.JSON(status, gin.H{"error": msg + ": " + err.Error(), "code": status})
}

func (s *Server) requestLog(c *gin.Context) *zap.SugaredLogger {
	return s.Log.With("request_id", c.GetString("request_id"))
}
