package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-streamline/aiworkflow/repository"
)

// bindQuery binds the query string into obj and validates it. A parameter
// given with an empty value (?created_before=) is treated as absent.
func bindQuery(c *gin.Context, obj any) error {
	values := c.Request.URL.Query()
	for key, vs := range values {
		if allEmpty(vs) {
			delete(values, key)
		}
	}
	if err := binding.MapFormWithTag(obj, values, "form"); err != nil {
		return err
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(obj)
}

func allEmpty(vs []string) bool {
	for _, v := range vs {
		if v != "" {
			return false
		}
	}
	return true
}

// listParams are shared by every filtered listing. order_by is not checked
// here: unknown keys fall back to update time descending.
type listParams struct {
	Limit   *int   `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset  *int   `form:"offset" binding:"omitempty,min=0"`
	OrderBy string `form:"order_by"`
	Order   string `form:"order" binding:"omitempty,oneof=asc desc"`
}

func (p listParams) options() repository.ListOptions {
	o := repository.ListOptions{
		Limit:   repository.DefaultLimit,
		OrderBy: p.OrderBy,
		Order:   p.Order,
	}
	if p.Limit != nil {
		o.Limit = *p.Limit
	}
	if p.Offset != nil {
		o.Offset = *p.Offset
	}
	return o
}

type createdUpdatedParams struct {
	CreatedAfter  *time.Time `form:"created_after"`
	CreatedBefore *time.Time `form:"created_before"`
	UpdatedAfter  *time.Time `form:"updated_after"`
	UpdatedBefore *time.Time `form:"updated_before"`
}

type workflowDefinitionParams struct {
	listParams
	createdUpdatedParams
	Name     *string `form:"name"`
	IsActive *bool   `form:"is_active"`
	Tags     *string `form:"tags"`
	Version  *string `form:"version"`
}

func (p workflowDefinitionParams) query() repository.WorkflowDefinitionQuery {
	return repository.WorkflowDefinitionQuery{
		ListOptions:   p.options(),
		IsActive:      p.IsActive,
		Name:          p.Name,
		Tags:          p.Tags,
		Version:       p.Version,
		CreatedAfter:  p.CreatedAfter,
		CreatedBefore: p.CreatedBefore,
		UpdatedAfter:  p.UpdatedAfter,
		UpdatedBefore: p.UpdatedBefore,
	}
}

type workflowJobParams struct {
	listParams
	createdUpdatedParams
	DefinitionID    *string    `form:"ai_workflow_def_id"`
	Status          *string    `form:"status"`
	JobName         *string    `form:"job_name"`
	StartedAfter    *time.Time `form:"started_after"`
	StartedBefore   *time.Time `form:"started_before"`
	CompletedAfter  *time.Time `form:"completed_after"`
	CompletedBefore *time.Time `form:"completed_before"`
}

func (p workflowJobParams) query() repository.WorkflowJobQuery {
	return repository.WorkflowJobQuery{
		ListOptions:     p.options(),
		DefinitionID:    p.DefinitionID,
		Status:          p.Status,
		JobName:         p.JobName,
		CreatedAfter:    p.CreatedAfter,
		CreatedBefore:   p.CreatedBefore,
		UpdatedAfter:    p.UpdatedAfter,
		UpdatedBefore:   p.UpdatedBefore,
		StartedAfter:    p.StartedAfter,
		StartedBefore:   p.StartedBefore,
		CompletedAfter:  p.CompletedAfter,
		CompletedBefore: p.CompletedBefore,
	}
}

type modelProviderParams struct {
	listParams
	ProviderName *string `form:"provider_name"`
	ProviderType *string `form:"provider_type"`
}

func (p modelProviderParams) query() repository.ModelProviderQuery {
	return repository.ModelProviderQuery{
		ListOptions:  p.options(),
		ProviderName: p.ProviderName,
		ProviderType: p.ProviderType,
	}
}

type deepLearningModelParams struct {
	listParams
	ModelName    *string `form:"model_name"`
	ModelType    *string `form:"model_type"`
	ProviderName *string `form:"provider_name"`
}

func (p deepLearningModelParams) query() repository.DeepLearningModelQuery {
	return repository.DeepLearningModelQuery{
		ListOptions:  p.options(),
		ModelName:    p.ModelName,
		ModelType:    p.ModelType,
		ProviderName: p.ProviderName,
	}
}

type jobStatusURI struct {
	Status string `uri:"status" binding:"required,oneof=pending running completed failed cancelled"`
}
