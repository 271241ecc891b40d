package handler

import (
	"sorty/internal/dto"
	"sorty/internal/service"

	"github.com/gin-gonic/gin"
)

type AssignmentsHandler struct{ svc service.AssignmentService }

func NewAssignmentsHandler(svc service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{svc: svc}
}

func (h *AssignmentsHandler) Assign(c *gin.Context) {
	var req dto.AssignRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Assign(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, resp)
}

func (h *AssignmentsHandler) Return(c *gin.Context) {
	var req dto.ReturnRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Return(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

func (h *AssignmentsHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transfer(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, resp)
}

func (h *AssignmentsHandler) List(c *gin.Context) {
	var filter dto.AssignmentFilter
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

func (h *AssignmentsHandler) Get(c *gin.Context) {
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

// ActiveForAsset answers GET /v1/assets/:id/assignment.
func (h *AssignmentsHandler) ActiveForAsset(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	resp, err := h.svc.ActiveForAsset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}
