package handler

import (
	"sorty/internal/dto"
	"sorty/internal/service"

	"github.com/gin-gonic/gin"
)

type AssetsHandler struct{ svc service.AssetService }

func NewAssetsHandler(svc service.AssetService) *AssetsHandler {
	return &AssetsHandler{svc: svc}
}

func (h *AssetsHandler) Create(c *gin.Context) {
	var req dto.CreateAssetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, resp)
}

func (h *AssetsHandler) List(c *gin.Context) {
	var filter dto.AssetFilter
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

func (h *AssetsHandler) Get(c *gin.Context) {
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

// GetByCode serves the label-scan lookup, backed by the asset cache.
func (h *AssetsHandler) GetByCode(c *gin.Context) {
	resp, err := h.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

func (h *AssetsHandler) Update(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateAssetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

func (h *AssetsHandler) Delete(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"id": id.String()})
}
