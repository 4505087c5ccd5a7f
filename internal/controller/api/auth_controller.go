package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/internal/controller"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/service"
	"github.com/lshigami/vidcert/internal/session"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
	sessions    *session.Manager
}

func NewAuthController(authService service.AuthService, sessions *session.Manager) *AuthController {
	return &AuthController{authService: authService, sessions: sessions}
}

// Register godoc
// @Summary Create an account
// @Description Registers with the identity provider. When email confirmation is required no access token is returned and pending_verification is true.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.RegisterRequest true "Username, email and password (at least 6 characters)"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or rejected by the identity provider"
// @Failure 503 {object} dto.ErrorResponse "Identity provider unavailable"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Sign in
// @Description Exchanges email and password for an access token. Send it back as "Authorization: Bearer <token>".
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 503 {object} dto.ErrorResponse "Identity provider unavailable"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Str("userID", resp.User.ID).Msg("API login")
	ctx.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out
// @Description Revokes the current access token. Always succeeds from the caller's point of view.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if st := session.FromContext(ctx); st != nil {
		if err := c.authService.Logout(ctx.Request.Context(), st.AccessToken); err != nil {
			log.Warn().Err(err).Str("userID", st.User.ID).Msg("API logout: provider sign-out failed")
		}
	}
	if err := c.sessions.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("API logout: failed to clear session cookie")
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Signed out"})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Sign in required"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	st := session.FromContext(ctx)
	ctx.JSON(http.StatusOK, dto.UserResponse{
		ID:        st.User.ID,
		Username:  st.User.Username,
		Email:     st.User.Email,
		CreatedAt: st.User.CreatedAt,
	})
}
