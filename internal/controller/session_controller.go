package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/openlearnlab/practice-engine/internal/dto"
	"github.com/openlearnlab/practice-engine/internal/service"
)

// SessionController manages practice session lifecycle and progress views.
type SessionController struct {
	sessionService service.SessionService
}

func NewSessionController(ss service.SessionService) *SessionController {
	return &SessionController{sessionService: ss}
}

// StartSession godoc
// @Summary Start a practice session
// @Description Opens a session that tracks progress toward a target count of finalized exercises.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Section, difficulty and target count"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.sessionService.Start(ctx.Request.Context(), RequestActor(ctx), req)
	if err != nil {
		log.Error().Err(err).Str("sectionID", req.SectionID).Msg("StartSession failed")
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetSession godoc
// @Summary Get session progress
// @Description Returns counters, status and, for completed sessions, the missed-question summary.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 403 {object} dto.ErrorResponse "Session belongs to a different actor"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	resp, err := c.sessionService.Get(ctx.Request.Context(), RequestActor(ctx), ctx.Param("session_id"))
	if err != nil {
		log.Warn().Err(err).Str("sessionID", ctx.Param("session_id")).Msg("GetSession failed")
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
