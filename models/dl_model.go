package models

import "errors"

// DeepLearningModel registers a model served by a ModelProvider.
// ProviderName is copied from the provider at creation and never re-synced.
type DeepLearningModel struct {
	Base
	ModelName    string  `gorm:"column:model_name_str;size:255;not null;index" json:"model_name_str"`
	ModelType    string  `gorm:"column:model_type_str;size:40;not null" json:"model_type_str"`
	Config       *string `gorm:"column:config_json;size:1000" json:"config_json"`
	ProviderID   string  `gorm:"column:model_provider_id;size:36;not null;index" json:"model_provider_id"`
	Comment      *string `gorm:"column:comment_text;size:500" json:"comment_text"`
	ProviderName string  `gorm:"column:provider_name_str;size:255;not null;index" json:"provider_name_str"`
}

func (DeepLearningModel) TableName() string {
	return "dl_models"
}

type DeepLearningModelCreate struct {
	ModelName  string  `json:"model_name_str" binding:"required,max=255"`
	ModelType  string  `json:"model_type_str" binding:"required,max=40"`
	Config     *string `json:"config_json" binding:"omitempty,max=1000"`
	ProviderID string  `json:"model_provider_id" binding:"required,max=36"`
	Comment    *string `json:"comment_text" binding:"omitempty,max=500"`
}

// Record builds the model; the provider name is filled in by the store.
func (c *DeepLearningModelCreate) Record(owner string) *DeepLearningModel {
	return &DeepLearningModel{
		Base:       Base{Owner: owner},
		ModelName:  c.ModelName,
		ModelType:  c.ModelType,
		Config:     c.Config,
		ProviderID: c.ProviderID,
		Comment:    c.Comment,
	}
}

// DeepLearningModelUpdate cannot move a model to another provider.
type DeepLearningModelUpdate struct {
	ModelName Optional[string] `json:"model_name_str"`
	ModelType Optional[string] `json:"model_type_str"`
	Config    Optional[string] `json:"config_json"`
	Comment   Optional[string] `json:"comment_text"`
}

func (u *DeepLearningModelUpdate) Validate() error {
	return errors.Join(
		checkLength("model_name_str", u.ModelName, 255),
		checkLength("model_type_str", u.ModelType, 40),
		checkLength("config_json", u.Config, 1000),
		checkLength("comment_text", u.Comment, 500),
	)
}

func (u *DeepLearningModelUpdate) Apply(m *DeepLearningModel) []string {
	var changed []string
	changed = applyValue(&m.ModelName, u.ModelName, "model_name_str", changed)
	changed = applyValue(&m.ModelType, u.ModelType, "model_type_str", changed)
	changed = applyNullable(&m.Config, u.Config, "config_json", changed)
	changed = applyNullable(&m.Comment, u.Comment, "comment_text", changed)
	return changed
}
