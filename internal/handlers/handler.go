package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// HealthHandler reports liveness
type HealthHandler struct {
	serviceName string
}

func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Health).Methods("GET")
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	ResponseWithJson(w, http.StatusOK, map[string]string{"status": "ok", "service": h.serviceName})
}

func ResponseWithJson(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
