package handler

import (
	"sorty/internal/dto"
	"sorty/internal/service"

	"github.com/gin-gonic/gin"
)

type IncidentsHandler struct{ svc service.IncidentService }

func NewIncidentsHandler(svc service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{svc: svc}
}

func (h *IncidentsHandler) Report(c *gin.Context) {
	var req dto.ReportIncidentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Report(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, resp)
}

func (h *IncidentsHandler) Investigate(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	resp, err := h.svc.Investigate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

func (h *IncidentsHandler) Resolve(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req dto.ResolveIncidentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Resolve(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

func (h *IncidentsHandler) Close(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

func (h *IncidentsHandler) Get(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

func (h *IncidentsHandler) List(c *gin.Context) {
	var filter dto.IncidentFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}
