package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/config"
	"github.com/go-streamline/aiworkflow/database"
	"github.com/go-streamline/aiworkflow/models"
	"github.com/go-streamline/aiworkflow/repository"
	"github.com/sirupsen/logrus"
)

type WorkflowDefinitionStore interface {
	Create(ctx context.Context, def *models.WorkflowDefinition) (*models.WorkflowDefinition, error)
	Get(ctx context.Context, id string) (*models.WorkflowDefinition, error)
	List(ctx context.Context, owner string, q repository.WorkflowDefinitionQuery) ([]*models.WorkflowDefinition, error)
	ListActive(ctx context.Context, owner string) ([]*models.WorkflowDefinition, error)
	Update(ctx context.Context, id string, patch *models.WorkflowDefinitionUpdate) (*models.WorkflowDefinition, error)
	SoftDelete(ctx context.Context, id string) (*models.WorkflowDefinition, error)
}

type WorkflowJobStore interface {
	Create(ctx context.Context, job *models.WorkflowJob) (*models.WorkflowJob, error)
	Get(ctx context.Context, id string) (*models.WorkflowJob, error)
	List(ctx context.Context, owner string, q repository.WorkflowJobQuery) ([]*models.WorkflowJob, error)
	ListByStatus(ctx context.Context, owner string, status string) ([]*models.WorkflowJob, error)
	ListByDefinition(ctx context.Context, owner string, definitionID string) ([]*models.WorkflowJob, error)
	Update(ctx context.Context, id string, patch *models.WorkflowJobUpdate) (*models.WorkflowJob, error)
	SoftDelete(ctx context.Context, id string) (*models.WorkflowJob, error)
}

type ModelProviderStore interface {
	Create(ctx context.Context, provider *models.ModelProvider) (*models.ModelProvider, error)
	Get(ctx context.Context, id string) (*models.ModelProvider, error)
	List(ctx context.Context, owner string, q repository.ModelProviderQuery) ([]*models.ModelProvider, error)
	Update(ctx context.Context, id string, patch *models.ModelProviderUpdate) (*models.ModelProvider, error)
	SoftDelete(ctx context.Context, id string) (*models.ModelProvider, error)
}

type DeepLearningModelStore interface {
	Create(ctx context.Context, model *models.DeepLearningModel) (*models.DeepLearningModel, error)
	Get(ctx context.Context, id string) (*models.DeepLearningModel, error)
	List(ctx context.Context, owner string, q repository.DeepLearningModelQuery) ([]*models.DeepLearningModel, error)
	Update(ctx context.Context, id string, patch *models.DeepLearningModelUpdate) (*models.DeepLearningModel, error)
	SoftDelete(ctx context.Context, id string) (*models.DeepLearningModel, error)
}

// SchemaManager creates, drops and describes the record tables.
type SchemaManager interface {
	CreateTables(ctx context.Context) ([]string, error)
	DropTables(ctx context.Context) ([]string, error)
	DescribeTables(ctx context.Context) ([]database.TableInfo, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	app         config.App
	definitions WorkflowDefinitionStore
	jobs        WorkflowJobStore
	providers   ModelProviderStore
	models      DeepLearningModelStore
	schema      SchemaManager
	log         *logrus.Logger
}

type Stores struct {
	Definitions WorkflowDefinitionStore
	Jobs        WorkflowJobStore
	Providers   ModelProviderStore
	Models      DeepLearningModelStore
	Schema      SchemaManager
}

func NewHandler(app config.App, stores Stores, log *logrus.Logger) *Handler {
	return &Handler{
		app:         app,
		definitions: stores.Definitions,
		jobs:        stores.Jobs,
		providers:   stores.Providers,
		models:      stores.Models,
		schema:      stores.Schema,
		log:         log,
	}
}

func (h *Handler) registerRoutes(group *gin.RouterGroup) {
	defs := group.Group("/ai_workflow_def")
	defs.POST("", h.CreateWorkflowDefinition)
	defs.GET("", h.ListWorkflowDefinitions)
	defs.GET("/list", h.ListActiveWorkflowDefinitions)
	defs.GET("/:id", h.GetWorkflowDefinition)
	defs.PATCH("/:id", h.UpdateWorkflowDefinition)
	defs.DELETE("/:id", h.DeleteWorkflowDefinition)

	jobs := group.Group("/ai_workflow_job")
	jobs.POST("", h.CreateWorkflowJob)
	jobs.GET("", h.ListWorkflowJobs)
	jobs.GET("/status/:status", h.ListWorkflowJobsByStatus)
	jobs.GET("/workflow/:workflow_def_id/jobs", h.ListWorkflowJobsByDefinition)
	jobs.GET("/:id", h.GetWorkflowJob)
	jobs.PATCH("/:id", h.UpdateWorkflowJob)
	jobs.DELETE("/:id", h.DeleteWorkflowJob)

	providers := group.Group("/providers")
	providers.POST("", h.CreateModelProvider)
	providers.GET("", h.ListModelProviders)
	providers.GET("/:id", h.GetModelProvider)
	providers.PATCH("/:id", h.UpdateModelProvider)
	providers.DELETE("/:id", h.DeleteModelProvider)

	dlModels := group.Group("/models")
	dlModels.POST("", h.CreateDeepLearningModel)
	dlModels.GET("", h.ListDeepLearningModels)
	dlModels.GET("/:id", h.GetDeepLearningModel)
	dlModels.PATCH("/:id", h.UpdateDeepLearningModel)
	dlModels.DELETE("/:id", h.DeleteDeepLearningModel)
}

func (h *Handler) registerDebugRoutes(group *gin.RouterGroup) {
	debug := group.Group("/debug")
	debug.POST("/create-tables", h.notInProduction, h.CreateTables)
	debug.DELETE("/drop-tables", h.notInProduction, h.DropTables)
	debug.GET("/table-info", h.notInProduction, h.TableInfo)
	debug.GET("/health-check", h.DatabaseHealthCheck)
}
