package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/models"
)

// CreateWorkflowJob answers 404 when the referenced definition does not exist.
func (h *Handler) CreateWorkflowJob(c *gin.Context) {
	var req models.WorkflowJobCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	job, err := h.jobs.Create(c.Request.Context(), req.Record(owner(c)))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, job)
}

func (h *Handler) ListWorkflowJobs(c *gin.Context) {
	var params workflowJobParams
	if err := bindQuery(c, &params); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	jobs, err := h.jobs.List(c.Request.Context(), owner(c), params.query())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, jobs)
}

func (h *Handler) ListWorkflowJobsByStatus(c *gin.Context) {
	var uri jobStatusURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	jobs, err := h.jobs.ListByStatus(c.Request.Context(), owner(c), uri.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, jobs)
}

func (h *Handler) ListWorkflowJobsByDefinition(c *gin.Context) {
	ctx := c.Request.Context()
	definitionID := c.Param("workflow_def_id")

	def, err := h.definitions.Get(ctx, definitionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if def == nil {
		h.fail(c, newNotFound(msgDefinitionNotFound))
		return
	}

	jobs, err := h.jobs.ListByDefinition(ctx, owner(c), definitionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, jobs)
}

func (h *Handler) GetWorkflowJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if job == nil {
		h.fail(c, newNotFound(msgJobNotFound))
		return
	}
	ok(c, job)
}

func (h *Handler) UpdateWorkflowJob(c *gin.Context) {
	var patch models.WorkflowJobUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	if err := patch.Validate(); err != nil {
		h.fail(c, newValidationError(err))
		return
	}
	job, err := h.jobs.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	if job == nil {
		h.fail(c, newNotFound(msgJobNotFound))
		return
	}
	ok(c, job)
}

func (h *Handler) DeleteWorkflowJob(c *gin.Context) {
	job, err := h.jobs.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if job == nil {
		h.fail(c, newNotFound(msgJobNotFound))
		return
	}
	ok(c, job)
}
