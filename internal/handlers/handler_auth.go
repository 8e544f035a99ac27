package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/agencydesk/agency_desk_app/internal/middleware"
	"github.com/agencydesk/agency_desk_app/internal/platform/config"
	"github.com/agencydesk/agency_desk_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	mfaService    portssvc.MFASvcFacade
	googleService portssvc.GoogleOAuthSvcFacade
	cfg           *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:   services.User,
		tokenService:  services.Token,
		mfaService:    services.MFA,
		googleService: services.GoogleOAuth,
		cfg:           cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication. The rate limit
// middleware is applied to the credential-bearing endpoints.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, limitMiddleware gin.HandlerFunc) {
	h := NewAuthHandler(services, cfg)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/verify-2fa", limitMiddleware, h.Verify2FA)
		auth.POST("/google", limitMiddleware, h.GoogleSignIn)
		auth.GET("/google/login", h.GoogleLogin)
		auth.GET("/google/callback", h.GoogleCallback)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// issueSession generates the access token and rotates the refresh cookie for
// a fully authenticated user. The cookie carries "userID.token" so the
// refresh endpoint can look the user up without a separate claim.
func (h *AuthHandler) issueSession(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		return nil, err
	}
	if err := h.tokenService.StoreRefreshToken(c.Request.Context(), user.UserID, refreshToken, refreshExpiresAt); err != nil {
		return nil, err
	}

	maxAge := int(time.Until(refreshExpiresAt).Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, user.UserID+"."+refreshToken, maxAge,
		h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	userResp := dto.ToUserResponse(user)
	return &dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   &expiresAt,
		User:        &userResp,
	}, nil
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1,
		h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// splitRefreshCookie separates the "userID.token" cookie value.
func splitRefreshCookie(value string) (userID, token string, ok bool) {
	userID, token, ok = strings.Cut(value, ".")
	if !ok || userID == "" || token == "" {
		return "", "", false
	}
	return userID, token, true
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (e.g., username exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username or email already taken"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user. When two-factor is enabled the response
// carries a short-lived pending token instead of an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if user.TOTPEnabled {
		pendingToken, err := h.tokenService.GenerateTwoFactorPendingToken(c.Request.Context(), user)
		if err != nil {
			logger.Error("Failed to generate 2FA pending token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{
			Requires2FA:  true,
			PendingToken: pendingToken,
		})
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		logger.Error("Failed to issue session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify2FA godoc
// @Summary Complete two-factor login
// @Description Exchanges a pending token plus a valid TOTP code for a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.Verify2FARequest true "Pending token and TOTP code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-2fa [post]
func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req dto.Verify2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, err := h.tokenService.ValidateTwoFactorPendingToken(c.Request.Context(), req.PendingToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired pending token"})
		return
	}
	if err := h.mfaService.VerifyCode(c.Request.Context(), userID, req.Code); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid code"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired pending token"})
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to issue session after 2FA", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleSignIn godoc
// @Summary Sign in with Google
// @Description Validates a Google ID token, creating the account on first
// sign-in. Users with two-factor enabled still have to complete it.
// @Tags auth
// @Accept json
// @Produce json
// @Param google body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	info, err := h.googleService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), *info)
	if err != nil {
		logger.Error("Failed to resolve google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}

	if user.TOTPEnabled {
		pendingToken, err := h.tokenService.GenerateTwoFactorPendingToken(c.Request.Context(), user)
		if err != nil {
			logger.Error("Failed to generate 2FA pending token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{
			Requires2FA:  true,
			PendingToken: pendingToken,
		})
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		logger.Error("Failed to issue session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

const oauthStateCookieName = "oauthstate"

// GoogleLogin godoc
// @Summary Start the Google redirect sign-in flow
// @Description Sets a CSRF state cookie and redirects the browser to Google.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := h.googleService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to generate oauth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}

	c.SetCookie(oauthStateCookieName, state, int((10 * time.Minute).Seconds()),
		"/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.GetGoogleLoginURL(c.Request.Context(), state))
}

// GoogleCallback godoc
// @Summary Complete the Google redirect sign-in flow
// @Description Verifies the state cookie, exchanges the authorization code
// and signs the user in. Users with two-factor enabled still have to
// complete it.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie == "" || c.Query("state") != stateCookie {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	info, err := h.googleService.ExchangeCodeForUserInfo(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), *info)
	if err != nil {
		logger.Error("Failed to resolve google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}

	if user.TOTPEnabled {
		pendingToken, err := h.tokenService.GenerateTwoFactorPendingToken(c.Request.Context(), user)
		if err != nil {
			logger.Error("Failed to generate 2FA pending token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{
			Requires2FA:  true,
			PendingToken: pendingToken,
		})
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		logger.Error("Failed to issue session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Rotates the refresh cookie and returns a fresh access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No refresh token"})
		return
	}
	userID, rawToken, ok := splitRefreshCookie(cookie)
	if !ok {
		h.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired"})
			return
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to rotate session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh session"})
		return
	}
	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: resp.AccessToken,
		ExpiresAt:   *resp.ExpiresAt,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil {
		if userID, _, ok := splitRefreshCookie(cookie); ok {
			if clearErr := h.tokenService.ClearRefreshToken(c.Request.Context(), userID); clearErr != nil {
				logger := middleware.GetLoggerFromCtx(c.Request.Context())
				logger.Error("Failed to clear refresh token", slog.String("error", clearErr.Error()))
			}
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
