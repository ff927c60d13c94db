package health

import (
	"net/http"
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type response struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Handle GET /api/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, response{
		Status:    "OK",
		Message:   "ParkEase API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
