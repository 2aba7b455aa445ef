package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/openlearnlab/practice-engine/internal/dto"
	"github.com/openlearnlab/practice-engine/internal/service"
)

// PracticeController exposes the two core operations: fetching a generated
// exercise and submitting an answer (or reveal) for it.
type PracticeController struct {
	exerciseService   service.ExerciseService
	submissionService service.SubmissionService
}

func NewPracticeController(es service.ExerciseService, ss service.SubmissionService) *PracticeController {
	return &PracticeController{exerciseService: es, submissionService: ss}
}

// FetchExercise godoc
// @Summary Generate an exercise instance
// @Description Generates a deterministic exercise for a topic and returns its public payload plus a capability key for submitting an answer.
// @Tags Practice
// @Accept json
// @Produce json
// @Param request body dto.FetchExerciseRequest true "Topic descriptor and seed inputs"
// @Success 200 {object} dto.FetchExerciseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or unknown kind/handler"
// @Failure 404 {object} dto.ErrorResponse "Unknown topic"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exercises [post]
func (c *PracticeController) FetchExercise(ctx *gin.Context) {
	var req dto.FetchExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.exerciseService.Fetch(ctx.Request.Context(), RequestActor(ctx), req)
	if err != nil {
		log.Warn().Err(err).Str("topic", req.Topic).Msg("FetchExercise failed")
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer or request a reveal
// @Description Validates the capability key, scores the answer with the kind's equivalence rule (or discloses the expected answer when reveal is requested and permitted) and advances session progress at most once per instance.
// @Tags Practice
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswerRequest true "Capability key plus answer payload or reveal flag"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired capability key"
// @Failure 403 {object} dto.ErrorResponse "Key belongs to a different actor or reveal not permitted"
// @Failure 409 {object} dto.ErrorResponse "Maximum attempts reached"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /submissions [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if !req.Reveal && len(req.Answer) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Submission must carry an answer or request a reveal"})
		return
	}

	resp, err := c.submissionService.Submit(ctx.Request.Context(), RequestActor(ctx), req)
	if err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer rejected")
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
