package http

import (
	"net/http"

	"github.com/dkotelnikov/user-service/internal/utils"
)

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.Health(r.Context()), http.StatusOK)
}
