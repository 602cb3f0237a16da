package handlers

import (
	"load-ranking-service/internal/api/dto"
	"load-ranking-service/internal/ports"
	"log"
	"net/http"
)

type AuthHandler struct {
	Board ports.LoadBoard
}

// Authenticate establishes a load board session eagerly so the first search
// doesn't pay the token exchange cost.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.Board.EnsureSession(r.Context()); err != nil {
		log.Printf("authenticate failed: %v", err)
		writeJSON(w, r, http.StatusBadGateway, dto.AuthResponse{
			Success:  false,
			Message:  "load board authentication failed",
			APICalls: h.Board.APICalls(),
		})
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AuthResponse{
		Success:  true,
		Message:  "authenticated",
		APICalls: h.Board.APICalls(),
	})
}
