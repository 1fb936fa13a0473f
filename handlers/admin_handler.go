package handlers

import (
	"net/http"

	"github.com/Dosada05/cs2-arena/services"
)

type AdminHandler struct {
	auditService services.AuditService
}

func NewAdminHandler(as services.AuditService) *AdminHandler {
	return &AdminHandler{auditService: as}
}

// RunAudit godoc
// @Summary Сверить таблицы с пересчетом матчей
// @Tags admin
// @Description Для каждой группы сохраненная таблица сравнивается с таблицей, пересчитанной из матчей с нуля.
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/audit [get]
func (h *AdminHandler) RunAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.auditService.RunAudit(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"healthy": report.Healthy(),
		"report":  report,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
