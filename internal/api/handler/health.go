package handler

import (
	"net/http"

	"github.com/mcoot/gameportal/internal/api/response"
)

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, response.Health{Status: "ok"})
}
