package handler

import (
	caseworkapp "github.com/funeralworks/backend/internal/application/casework"
	"github.com/gin-gonic/gin"
)

// StatusHandler serves the workflow status catalog
type StatusHandler struct {
	BaseHandler
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// StatusDefinitionResponse represents one catalog entry in API responses
type StatusDefinitionResponse struct {
	Status           string `json:"status"`
	Label            string `json:"label"`
	Percentage       int    `json:"percentage"`
	Color            string `json:"color"`
	RequiresDocument bool   `json:"requires_document"`
	IsTerminal       bool   `json:"is_terminal"`
	IsPaymentAtRisk  bool   `json:"is_payment_at_risk"`
}

// List handles GET /statuses, returning the catalog in workflow order
func (h *StatusHandler) List(c *gin.Context) {
	catalog := caseworkapp.CatalogResponse()
	responses := make([]StatusDefinitionResponse, 0, len(catalog))
	for _, def := range catalog {
		responses = append(responses, StatusDefinitionResponse{
			Status:           string(def.Status),
			Label:            def.Label,
			Percentage:       def.Percentage,
			Color:            def.Color,
			RequiresDocument: def.RequiresDocument,
			IsTerminal:       def.IsTerminal,
			IsPaymentAtRisk:  def.IsPaymentAtRisk,
		})
	}
	h.Success(c, responses)
}
