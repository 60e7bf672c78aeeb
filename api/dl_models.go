package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/models"
)

// CreateDeepLearningModel answers 404 MODEL_PROVIDER_NOT_FOUND when the provider does not exist.
func (h *Handler) CreateDeepLearningModel(c *gin.Context) {
	var req models.DeepLearningModelCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	model, err := h.models.Create(c.Request.Context(), req.Record(owner(c)))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, model)
}

func (h *Handler) ListDeepLearningModels(c *gin.Context) {
	var params deepLearningModelParams
	if err := bindQuery(c, &params); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	list, err := h.models.List(c.Request.Context(), owner(c), params.query())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, list)
}

func (h *Handler) GetDeepLearningModel(c *gin.Context) {
	model, err := h.models.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if model == nil {
		h.fail(c, newModelNotFound())
		return
	}
	ok(c, model)
}

func (h *Handler) UpdateDeepLearningModel(c *gin.Context) {
	var patch models.DeepLearningModelUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	if err := patch.Validate(); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	model, err := h.models.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	if model == nil {
		h.fail(c, newModelNotFound())
		return
	}
	ok(c, model)
}

func (h *Handler) DeleteDeepLearningModel(c *gin.Context) {
	model, err := h.models.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if model == nil {
		h.fail(c, newModelNotFound())
		return
	}
	ok(c, model)
}
