package models

import (
	"errors"
	"time"
)

// JobStatus values are stored as plain strings and not enforced by the database.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// WorkflowJob records one execution request of a WorkflowDefinition.
// Execution happens elsewhere; the executor reports progress through updates.
type WorkflowJob struct {
	Base
	DefinitionID     string     `gorm:"column:ai_workflow_def_id;size:36;index;not null" json:"ai_workflow_def_id"`
	JobName          string     `gorm:"column:job_name_str;size:255;not null" json:"job_name_str"`
	TriggerData      string     `gorm:"column:trigger_data_json;type:text;not null" json:"trigger_data_json"`
	Status           string     `gorm:"column:status_str;size:50;index;not null" json:"status_str"`
	ResultData       *string    `gorm:"column:result_data_json;type:text" json:"result_data_json"`
	ErrorMessage     *string    `gorm:"column:error_message_text;size:2000" json:"error_message_text"`
	StartedAt        *time.Time `gorm:"column:started_at_time" json:"started_at_time"`
	CompletedAt      *time.Time `gorm:"column:completed_at_time" json:"completed_at_time"`
	ExecutionSeconds *float64   `gorm:"column:execution_time_seconds" json:"execution_time_seconds"`
}

func (WorkflowJob) TableName() string {
	return "ai_workflow_job"
}

type WorkflowJobCreate struct {
	DefinitionID     string     `json:"ai_workflow_def_id" binding:"required,max=36"`
	JobName          string     `json:"job_name_str" binding:"required,max=255"`
	TriggerData      string     `json:"trigger_data_json"`
	Status           string     `json:"status_str" binding:"omitempty,max=50"`
	ResultData       *string    `json:"result_data_json"`
	ErrorMessage     *string    `json:"error_message_text" binding:"omitempty,max=2000"`
	StartedAt        *time.Time `json:"started_at_time"`
	CompletedAt      *time.Time `json:"completed_at_time"`
	ExecutionSeconds *float64   `json:"execution_time_seconds"`
}

func (c *WorkflowJobCreate) Record(owner string) *WorkflowJob {
	j := &WorkflowJob{
		Base:             Base{Owner: owner},
		DefinitionID:     c.DefinitionID,
		JobName:          c.JobName,
		TriggerData:      c.TriggerData,
		Status:           c.Status,
		ResultData:       c.ResultData,
		ErrorMessage:     c.ErrorMessage,
		StartedAt:        c.StartedAt,
		CompletedAt:      c.CompletedAt,
		ExecutionSeconds: c.ExecutionSeconds,
	}
	if j.Status == "" {
		j.Status = string(JobStatusPending)
	}
	return j
}

// WorkflowJobUpdate cannot move a job to another definition.
type WorkflowJobUpdate struct {
	JobName          Optional[string]    `json:"job_name_str"`
	TriggerData      Optional[string]    `json:"trigger_data_json"`
	Status           Optional[string]    `json:"status_str"`
	ResultData       Optional[string]    `json:"result_data_json"`
	ErrorMessage     Optional[string]    `json:"error_message_text"`
	StartedAt        Optional[time.Time] `json:"started_at_time"`
	CompletedAt      Optional[time.Time] `json:"completed_at_time"`
	ExecutionSeconds Optional[float64]   `json:"execution_time_seconds"`
}

func (u *WorkflowJobUpdate) Validate() error {
	return errors.Join(
		checkLength("job_name_str", u.JobName, 255),
		checkLength("status_str", u.Status, 50),
		checkLength("error_message_text", u.ErrorMessage, 2000),
	)
}

func (u *WorkflowJobUpdate) Apply(j *WorkflowJob) []string {
	var changed []string
	changed = applyValue(&j.JobName, u.JobName, "job_name_str", changed)
	changed = applyValue(&j.TriggerData, u.TriggerData, "trigger_data_json", changed)
	changed = applyValue(&j.Status, u.Status, "status_str", changed)
	changed = applyNullable(&j.ResultData, u.ResultData, "result_data_json", changed)
	changed = applyNullable(&j.ErrorMessage, u.ErrorMessage, "error_message_text", changed)
	changed = applyNullable(&j.StartedAt, u.StartedAt, "started_at_time", changed)
	changed = applyNullable(&j.CompletedAt, u.CompletedAt, "completed_at_time", changed)
	changed = applyNullable(&j.ExecutionSeconds, u.ExecutionSeconds, "execution_time_seconds", changed)
	return changed
}
