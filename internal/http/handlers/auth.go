package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/eventlyhq/evently/internal/config"
	"github.com/eventlyhq/evently/internal/domain/user"
	"github.com/eventlyhq/evently/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// SessionStore is the slice of the session store the handlers use.
type SessionStore interface {
	Login(ctx context.Context, email, password string) (user.User, error)
	SignUp(ctx context.Context, name, email, password string, isAdmin bool) (user.User, error)
	Logout(ctx context.Context) error
	Current() (user.User, bool)
}

type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, error)
}

type AuthHandler struct {
	sessions SessionStore
	jwt      TokenIssuer
}

func NewAuthHandler(sessions SessionStore, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		jwt:      jwt,
	}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// new accounts are never admins through the public surface

	u, err := h.sessions.SignUp(cctx, req.Name, req.Email, req.Password, false)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "email_taken", "Email is already in use.")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"accessToken": accessToken,
		"user":        u,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.sessions.Login(cctx, req.Email, req.Password)

	if err != nil {
		// lookup miss and bad password respond identically
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
		"user":        u,
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.sessions.Logout(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not log out")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Me reports the identity of the presented access token.
func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	if u, ok := h.sessions.Current(); ok && u.ID == userID {
		ctx.JSON(http.StatusOK, u)
		return
	}

	role, _ := middlewares.RoleFromContext(ctx)

	ctx.JSON(http.StatusOK, gin.H{
		"id":   userID,
		"role": role,
	})
}
