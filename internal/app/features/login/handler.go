// internal/app/features/login/handler.go

// Package login signs staff in against the shared credential configured
// for the deployment. Attempts are rate limited per IP and per login so
// the single shared account cannot be brute forced.
package login

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	"github.com/dalemusser/sallehub/internal/app/system/auth"
	"github.com/dalemusser/sallehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

type Handler struct {
	StaffLogin   string
	PasswordHash string
	Limiter      *ratelimit.LoginLimiter
	Log          *zap.Logger
}

func NewHandler(staffLogin, passwordHash string, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		StaffLogin:   staffLogin,
		PasswordHash: passwordHash,
		Limiter:      limiter,
		Log:          logger,
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Serve handles POST /login.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if ok, reason := h.Limiter.Check(r, req.Login); !ok {
		h.Log.Warn("login rate limited",
			zap.String("ip", ratelimit.ClientIP(r)),
			zap.String("login", req.Login))
		respond.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	if !auth.VerifyStaff(req.Login, req.Password, h.StaffLogin, h.PasswordHash) {
		h.Log.Warn("login failed",
			zap.String("ip", ratelimit.ClientIP(r)),
			zap.String("login", req.Login))
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := auth.SignIn(w, r, req.Login); err != nil {
		respond.Internal(w, h.Log, "saving session failed", err)
		return
	}
	h.Limiter.ResetLogin(req.Login)

	h.Log.Info("staff signed in", zap.String("login", req.Login))
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
