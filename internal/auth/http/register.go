package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hotellisting/hotellisting/internal/auth/service"
	"github.com/hotellisting/hotellisting/pkg/httpx"
	"github.com/hotellisting/hotellisting/pkg/slogx"
)

// RegisterHandler serves POST /account/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
		return
	}

	verrs, err := h.AuthService.Register(ctx, service.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		log.Error("register failed", slog.Any("err", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(verrs) > 0 {
		// One entry per failed rule, keyed by its code.
		body := make(map[string]string, len(verrs))
		for _, v := range verrs {
			body[v.Code] = v.Description
		}
		httpx.WriteJSON(w, http.StatusBadRequest, body)
		return
	}

	w.WriteHeader(http.StatusOK)
}
