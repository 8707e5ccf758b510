package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
	"github.com/hotellisting/hotellisting/internal/auth/service"
	"github.com/hotellisting/hotellisting/pkg/httpx"
	"github.com/hotellisting/hotellisting/pkg/slogx"
)

// RefreshHandler serves POST /account/refreshtoken. The request body carries
// the previous token triple exactly as a successful login returned it.
type RefreshHandler struct {
	AuthService *service.AuthService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req domain.AuthResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	resp, err := h.AuthService.RefreshTokens(ctx, req)
	if err != nil {
		log.Error("refresh failed", slog.Any("err", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if resp == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
