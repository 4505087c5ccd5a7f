package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/internal/controller"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/service"
	"github.com/lshigami/vidcert/internal/session"
	"github.com/rs/zerolog/log"
)

const pendingVerificationNotice = "Account created. Check your email to confirm it, then sign in."

type PageController struct {
	authService        service.AuthService
	quizService        service.QuizService
	certificateService service.CertificateService
	sessions           *session.Manager
}

func NewPageController(
	authService service.AuthService,
	quizService service.QuizService,
	certificateService service.CertificateService,
	sessions *session.Manager,
) *PageController {
	return &PageController{
		authService:        authService,
		quizService:        quizService,
		certificateService: certificateService,
		sessions:           sessions,
	}
}

func (c *PageController) Register(router *gin.Engine) {
	pages := router.Group("")
	pages.Use(c.sessions.Resolve())
	{
		pages.GET("/", c.Landing)
		pages.GET("/login", c.LoginPage)
		pages.POST("/login", c.Login)
		pages.GET("/register", c.RegisterPage)
		pages.POST("/register", c.RegisterAccount)
		pages.POST("/logout", c.Logout)
		pages.GET("/verify", c.Verify)
	}

	private := pages.Group("")
	private.Use(session.RequirePageUser())
	{
		private.GET("/dashboard", c.Dashboard)
		private.POST("/dashboard/quiz", c.GenerateQuiz)
		private.GET("/quiz/:quiz_id", c.QuizPage)
		private.POST("/quiz/:quiz_id", c.SubmitQuiz)
		private.GET("/certificates/:certificate_id", c.CertificatePage)
	}
}

func (c *PageController) render(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if st := session.FromContext(ctx); st != nil {
		data["User"] = st.User
	}
	ctx.HTML(status, name, data)
}

func (c *PageController) renderError(ctx *gin.Context, err error) {
	status, msg := controller.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("Page failed")
	}
	c.render(ctx, status, "error.html", gin.H{"Status": status, "Error": msg})
}

func (c *PageController) Landing(ctx *gin.Context) {
	c.render(ctx, http.StatusOK, "landing.html", nil)
}

func (c *PageController) LoginPage(ctx *gin.Context) {
	if session.FromContext(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.render(ctx, http.StatusOK, "login.html", nil)
}

func (c *PageController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.render(ctx, http.StatusBadRequest, "login.html", gin.H{"Error": "Email and password are required", "Email": req.Email})
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		status, msg := controller.ErrorStatus(err)
		c.render(ctx, status, "login.html", gin.H{"Error": msg, "Email": req.Email})
		return
	}
	c.signIn(ctx, resp.AccessToken)
}

func (c *PageController) RegisterPage(ctx *gin.Context) {
	if session.FromContext(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.render(ctx, http.StatusOK, "register.html", nil)
}

func (c *PageController) RegisterAccount(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.render(ctx, http.StatusBadRequest, "register.html", gin.H{"Error": "All fields are required", "Username": req.Username, "Email": req.Email})
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		status, msg := controller.ErrorStatus(err)
		c.render(ctx, status, "register.html", gin.H{"Error": msg, "Username": req.Username, "Email": req.Email})
		return
	}
	if resp.PendingVerification || resp.AccessToken == "" {
		c.render(ctx, http.StatusOK, "login.html", gin.H{"Notice": pendingVerificationNotice, "Email": req.Email})
		return
	}
	c.signIn(ctx, resp.AccessToken)
}

func (c *PageController) signIn(ctx *gin.Context, accessToken string) {
	if err := c.sessions.SignIn(ctx, accessToken); err != nil {
		log.Error().Err(err).Msg("Failed to write session cookie")
		c.render(ctx, http.StatusInternalServerError, "login.html", gin.H{"Error": "Could not start your session. Please try again."})
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (c *PageController) Logout(ctx *gin.Context) {
	if st := session.FromContext(ctx); st != nil {
		if err := c.authService.Logout(ctx.Request.Context(), st.AccessToken); err != nil {
			log.Warn().Err(err).Str("userID", st.User.ID).Msg("Provider sign-out failed")
		}
	}
	if err := c.sessions.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to clear session cookie")
	}
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *PageController) Dashboard(ctx *gin.Context) {
	c.renderDashboard(ctx, http.StatusOK, gin.H{})
}

func (c *PageController) renderDashboard(ctx *gin.Context, status int, data gin.H) {
	st := session.FromContext(ctx)
	certs, err := c.certificateService.ListForUser(ctx.Request.Context(), st.User.ID)
	if err != nil {
		data["CertificatesError"] = "Your certificates could not be loaded right now."
	}
	data["Certificates"] = certs
	c.render(ctx, status, "dashboard.html", data)
}

func (c *PageController) GenerateQuiz(ctx *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.renderDashboard(ctx, http.StatusBadRequest, gin.H{"Error": "Please enter a valid video link"})
		return
	}

	st := session.FromContext(ctx)
	quiz, err := c.quizService.CreateQuiz(ctx.Request.Context(), st.User, req.VideoURL)
	if err != nil {
		status, msg := controller.ErrorStatus(err)
		c.renderDashboard(ctx, status, gin.H{"Error": msg, "VideoURL": req.VideoURL})
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/quiz/"+quiz.ID)
}

func (c *PageController) QuizPage(ctx *gin.Context) {
	st := session.FromContext(ctx)
	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), st.User, ctx.Param("quiz_id"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	c.render(ctx, http.StatusOK, "quiz.html", gin.H{"Quiz": quiz})
}

// SubmitQuiz reads one radio group per question, named answer_<index>.
// Missing or malformed values count as unanswered.
func (c *PageController) SubmitQuiz(ctx *gin.Context) {
	st := session.FromContext(ctx)
	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), st.User, ctx.Param("quiz_id"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	answers := make([]*int, len(quiz.Questions))
	raw := make([]string, len(quiz.Questions))
	for i := range quiz.Questions {
		raw[i] = strings.TrimSpace(ctx.PostForm("answer_" + strconv.Itoa(i)))
		if v, err := strconv.Atoi(raw[i]); err == nil {
			answers[i] = &v
		}
	}

	result, err := c.quizService.SubmitQuiz(ctx.Request.Context(), st.User, quiz.ID, answers)
	if err != nil {
		if service.IsValidationError(err) {
			c.render(ctx, http.StatusBadRequest, "quiz.html", gin.H{"Quiz": quiz, "Error": err.Error(), "Answers": raw})
			return
		}
		c.renderError(ctx, err)
		return
	}
	c.render(ctx, http.StatusOK, "result.html", gin.H{"Quiz": quiz, "Result": result, "Answers": raw})
}

func (c *PageController) Verify(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Query("id"))
	if id == "" {
		c.render(ctx, http.StatusOK, "verify.html", gin.H{"Status": ""})
		return
	}

	res := c.certificateService.Verify(ctx.Request.Context(), id)
	data := gin.H{"ID": id, "Status": string(res.Status)}
	switch res.Status {
	case service.VerificationFound:
		cert := *res.Certificate
		data["HasReview"] = len(cert.Review) > 0
		if !controller.IncludeReview(ctx) {
			cert.Review = nil
		}
		data["Certificate"] = cert
		c.render(ctx, http.StatusOK, "verify.html", data)
	case service.VerificationNotFound:
		c.render(ctx, http.StatusNotFound, "verify.html", data)
	default:
		c.render(ctx, http.StatusServiceUnavailable, "verify.html", data)
	}
}

func (c *PageController) CertificatePage(ctx *gin.Context) {
	st := session.FromContext(ctx)
	cert, err := c.certificateService.GetForUser(ctx.Request.Context(), ctx.Param("certificate_id"), st.User.ID)
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	c.render(ctx, http.StatusOK, "certificate.html", gin.H{"Certificate": cert})
}
