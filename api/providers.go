package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/models"
)

func (h *Handler) CreateModelProvider(c *gin.Context) {
	var req models.ModelProviderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	provider, err := h.providers.Create(c.Request.Context(), req.Record(owner(c)))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, provider)
}

func (h *Handler) ListModelProviders(c *gin.Context) {
	var params modelProviderParams
	if err := bindQuery(c, &params); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	providers, err := h.providers.List(c.Request.Context(), owner(c), params.query())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, providers)
}

func (h *Handler) GetModelProvider(c *gin.Context) {
	provider, err := h.providers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if provider == nil {
		h.fail(c, newModelProviderNotFound())
		return
	}
	ok(c, provider)
}

func (h *Handler) UpdateModelProvider(c *gin.Context) {
	var patch models.ModelProviderUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	if err := patch.Validate(); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	provider, err := h.providers.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	if provider == nil {
		h.fail(c, newModelProviderNotFound())
		return
	}
	ok(c, provider)
}

func (h *Handler) DeleteModelProvider(c *gin.Context) {
	provider, err := h.providers.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if provider == nil {
		h.fail(c, newModelProviderNotFound())
		return
	}
	ok(c, provider)
}
