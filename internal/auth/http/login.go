package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hotellisting/hotellisting/internal/auth/service"
	"github.com/hotellisting/hotellisting/pkg/httpx"
	"github.com/hotellisting/hotellisting/pkg/slogx"
)

// LoginHandler serves POST /account/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	resp, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Error("login failed", slog.Any("err", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// A nil response means the credentials were rejected. The body stays
	// empty so callers can't tell which part was wrong.
	if resp == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
