package handler

import (
	"fmt"
	"net/http"

	"sorty/internal/dto"
	"sorty/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

// ExportAssets streams the filtered inventory as an XLSX download.
func (h *ReportsHandler) ExportAssets(c *gin.Context) {
	var filter dto.AssetFilter
	if !bindQuery(c, &filter) {
		return
	}
	data, err := h.svc.ExportAssets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="inventario.xlsx"`)
	c.Data(http.StatusOK, mimeXLSX, data)
}

func (h *ReportsHandler) AssignmentReceipt(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	data, err := h.svc.AssignmentReceipt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="acta-%s.pdf"`, id.String()[:8]))
	c.Data(http.StatusOK, mimePDF, data)
}
