// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	"github.com/dalemusser/sallehub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles POST /logout. Signing out an anonymous session is a no-op
// that still returns 200.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		respond.Internal(w, h.Log, "clearing session failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
