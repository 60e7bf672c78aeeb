package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/models"
)

func (h *Handler) CreateWorkflowDefinition(c *gin.Context) {
	var req models.WorkflowDefinitionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	def, err := h.definitions.Create(c.Request.Context(), req.Record(owner(c)))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, def)
}

func (h *Handler) ListWorkflowDefinitions(c *gin.Context) {
	var params workflowDefinitionParams
	if err := bindQuery(c, &params); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	defs, err := h.definitions.List(c.Request.Context(), owner(c), params.query())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, defs)
}

func (h *Handler) ListActiveWorkflowDefinitions(c *gin.Context) {
	defs, err := h.definitions.ListActive(c.Request.Context(), owner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, defs)
}

func (h *Handler) GetWorkflowDefinition(c *gin.Context) {
	def, err := h.definitions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if def == nil {
		h.fail(c, newNotFound(msgDefinitionNotFound))
		return
	}
	ok(c, def)
}

func (h *Handler) UpdateWorkflowDefinition(c *gin.Context) {
	var patch models.WorkflowDefinitionUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	if err := patch.Validate(); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	def, err := h.definitions.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	if def == nil {
		h.fail(c, newNotFound(msgDefinitionNotFound))
		return
	}
	ok(c, def)
}

func (h *Handler) DeleteWorkflowDefinition(c *gin.Context) {
	def, err := h.definitions.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if def == nil {
		h.fail(c, newNotFound(msgDefinitionNotFound))
		return
	}
	ok(c, def)
}
