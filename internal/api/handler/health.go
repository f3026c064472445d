package handler

import (
	"net/http"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/api/response"
)

// HealthCheck returns service liveness
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status":  "ok",
		"service": "chatbot-engine",
	})
}
