package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/internal/controller"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/service"
	"github.com/lshigami/vidcert/internal/session"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// CreateQuiz godoc
// @Summary Generate a quiz from a video link
// @Description Builds a 5 question multiple choice quiz from the video's transcript, or from its title when no transcript is available. The answer key stays on the server.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateQuizRequest true "Video link"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Missing video URL"
// @Failure 401 {object} dto.ErrorResponse "Sign in required"
// @Failure 502 {object} dto.ErrorResponse "The AI model did not return a usable quiz"
// @Failure 503 {object} dto.ErrorResponse "Quiz store unavailable"
// @Router /quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}

	st := session.FromContext(ctx)
	quiz, err := c.quizService.CreateQuiz(ctx.Request.Context(), st.User, req.VideoURL)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary Get a generated quiz
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 401 {object} dto.ErrorResponse "Sign in required"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found or expired"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	st := session.FromContext(ctx)
	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), st.User, ctx.Param("quiz_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit answers
// @Description Scores the answers; a score of at least 80% issues a certificate. One entry per question, null for unanswered. If the certificate could not be saved, certificate is null and certificate_error explains; submit again to retry.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Selected option index per question"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} dto.ErrorResponse "Wrong number of answers or option out of range"
// @Failure 401 {object} dto.ErrorResponse "Sign in required"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found or expired"
// @Router /quizzes/{quiz_id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}

	st := session.FromContext(ctx)
	result, err := c.quizService.SubmitQuiz(ctx.Request.Context(), st.User, ctx.Param("quiz_id"), req.Answers)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
