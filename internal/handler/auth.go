package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/eventia/internal/clock"
	"github.com/dfquintero/eventia/internal/config"
	"github.com/dfquintero/eventia/internal/ids"
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/service"
	"github.com/dfquintero/eventia/internal/utils"
	"github.com/dfquintero/eventia/internal/validate"
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Gen    ids.Generator
	Mirror service.Mirror
	Clock  clock.Clock
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo, gen ids.Generator, mirror service.Mirror, clk clock.Clock) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens, Gen: gen, Mirror: mirror, Clock: clk}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"` // ORGANIZER | PARTICIPANT
	ProfileID string `json:"profile_id"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ProfileID string `json:"profile_id,omitempty"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register creates an ACTIVE account and returns a token pair immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Email(req.Email); err != nil {
		return fail(c, err)
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != "ORGANIZER" && role != "PARTICIPANT" {
		role = "PARTICIPANT"
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	user := model.User{
		ID:           h.Gen.New(ids.PrefixUser),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       model.AccountStatusActive,
		ProfileID:    req.ProfileID,
		CreatedAt:    h.Clock.Now(),
	}
	if err := h.Users.Add(user); err != nil {
		return fail(c, err)
	}
	if err := h.Mirror.SaveUser(c.Request().Context(), user); err != nil {
		c.Logger().Warnf("mirror: save user %s failed: %v", user.ID, err)
	}

	return h.issueTokens(c, http.StatusCreated, user)
}

// Login verifies credentials and account status, then returns a new pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	user, err := h.Users.FindByEmail(req.Email)
	if err != nil || !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !user.CanLogin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is not active"})
	}

	return h.issueTokens(c, http.StatusOK, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	now := h.Clock.Now()
	hash := utils.HashRefreshRaw(req.RefreshToken)
	stored, err := h.Tokens.FindActive(hash, now)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	user, err := h.Users.FindByID(stored.UserID)
	if err != nil || !user.CanLogin() {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	h.Tokens.Revoke(hash, now)

	return h.issueTokens(c, http.StatusOK, user)
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	if !h.Tokens.Revoke(utils.HashRefreshRaw(req.RefreshToken), h.Clock.Now()) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Users.FindByID(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, userPart{ID: user.ID, Email: user.Email, Role: user.Role, ProfileID: user.ProfileID})
}

func (h *AuthHandler) issueTokens(c echo.Context, status int, user model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	h.Tokens.Store(model.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshRaw(refresh.Raw),
		ExpiresAt: refresh.Exp,
		CreatedAt: h.Clock.Now(),
	})

	return c.JSON(status, authResp{
		User:    userPart{ID: user.ID, Email: user.Email, Role: user.Role, ProfileID: user.ProfileID},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}
