package models

import "errors"

const DefaultWorkflowVersion = "1.0.0"

// WorkflowDefinition stores a pipeline configuration document and its metadata.
// The pipeline is kept verbatim and never parsed.
type WorkflowDefinition struct {
	Base
	Name        string  `gorm:"column:name_str;size:255;not null" json:"name_str"`
	Description *string `gorm:"column:description_text;size:1000" json:"description_text"`
	Pipeline    string  `gorm:"column:hs_yaml_content;type:text;not null" json:"hs_yaml_content"`
	Version     string  `gorm:"column:version_str;size:50;not null" json:"version_str"`
	IsActive    bool    `gorm:"column:is_active_flag;not null;index" json:"is_active_flag"`
	Tags        *string `gorm:"column:tags_str;size:500" json:"tags_str"`
}

func (WorkflowDefinition) TableName() string {
	return "ai_workflow_def"
}

type WorkflowDefinitionCreate struct {
	Name        string  `json:"name_str" binding:"required,max=255"`
	Description *string `json:"description_text" binding:"omitempty,max=1000"`
	Pipeline    string  `json:"hs_yaml_content" binding:"required"`
	Version     string  `json:"version_str" binding:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active_flag"`
	Tags        *string `json:"tags_str" binding:"omitempty,max=500"`
}

// Record builds the definition owned by owner, filling version and active defaults.
func (c *WorkflowDefinitionCreate) Record(owner string) *WorkflowDefinition {
	d := &WorkflowDefinition{
		Base:        Base{Owner: owner},
		Name:        c.Name,
		Description: c.Description,
		Pipeline:    c.Pipeline,
		Version:     c.Version,
		IsActive:    true,
		Tags:        c.Tags,
	}
	if d.Version == "" {
		d.Version = DefaultWorkflowVersion
	}
	if c.IsActive != nil {
		d.IsActive = *c.IsActive
	}
	return d
}

type WorkflowDefinitionUpdate struct {
	Name        Optional[string] `json:"name_str"`
	Description Optional[string] `json:"description_text"`
	Pipeline    Optional[string] `json:"hs_yaml_content"`
	Version     Optional[string] `json:"version_str"`
	IsActive    Optional[bool]   `json:"is_active_flag"`
	Tags        Optional[string] `json:"tags_str"`
}

func (u *WorkflowDefinitionUpdate) Validate() error {
	return errors.Join(
		checkLength("name_str", u.Name, 255),
		checkLength("description_text", u.Description, 1000),
		checkLength("version_str", u.Version, 50),
		checkLength("tags_str", u.Tags, 500),
	)
}

// Apply copies the present fields onto d and returns the changed columns.
func (u *WorkflowDefinitionUpdate) Apply(d *WorkflowDefinition) []string {
	var changed []string
	changed = applyValue(&d.Name, u.Name, "name_str", changed)
	changed = applyNullable(&d.Description, u.Description, "description_text", changed)
	changed = applyValue(&d.Pipeline, u.Pipeline, "hs_yaml_content", changed)
	changed = applyValue(&d.Version, u.Version, "version_str", changed)
	changed = applyValue(&d.IsActive, u.IsActive, "is_active_flag", changed)
	changed = applyNullable(&d.Tags, u.Tags, "tags_str", changed)
	return changed
}
