package models

import "errors"

const DefaultProviderType = "custom"

// ModelProvider holds connection details for an external model service.
// APIKey is stored as given, without encryption.
type ModelProvider struct {
	Base
	ProviderName string  `gorm:"column:provider_name_str;size:255;not null;index" json:"provider_name_str"`
	ProviderType string  `gorm:"column:provider_type_str;size:40;not null" json:"provider_type_str"`
	APIKey       *string `gorm:"column:api_key_str;size:500" json:"api_key_str"`
	APIBaseURL   *string `gorm:"column:api_base_url_str;size:500" json:"api_base_url_str"`
	ExtraConfig  *string `gorm:"column:extra_config_json;size:2000" json:"extra_config_json"`
	Comment      *string `gorm:"column:comment_text;size:500" json:"comment_text"`
}

func (ModelProvider) TableName() string {
	return "model_providers"
}

type ModelProviderCreate struct {
	ProviderName string  `json:"provider_name_str" binding:"required,max=255"`
	ProviderType string  `json:"provider_type_str" binding:"omitempty,max=40"`
	APIKey       *string `json:"api_key_str" binding:"omitempty,max=500"`
	APIBaseURL   *string `json:"api_base_url_str" binding:"omitempty,max=500"`
	ExtraConfig  *string `json:"extra_config_json" binding:"omitempty,max=2000"`
	Comment      *string `json:"comment_text" binding:"omitempty,max=500"`
}

func (c *ModelProviderCreate) Record(owner string) *ModelProvider {
	p := &ModelProvider{
		Base:         Base{Owner: owner},
		ProviderName: c.ProviderName,
		ProviderType: c.ProviderType,
		APIKey:       c.APIKey,
		APIBaseURL:   c.APIBaseURL,
		ExtraConfig:  c.ExtraConfig,
		Comment:      c.Comment,
	}
	if p.ProviderType == "" {
		p.ProviderType = DefaultProviderType
	}
	return p
}

// ModelProviderUpdate does not touch models already copied from this provider.
type ModelProviderUpdate struct {
	ProviderName Optional[string] `json:"provider_name_str"`
	ProviderType Optional[string] `json:"provider_type_str"`
	APIKey       Optional[string] `json:"api_key_str"`
	APIBaseURL   Optional[string] `json:"api_base_url_str"`
	ExtraConfig  Optional[string] `json:"extra_config_json"`
	Comment      Optional[string] `json:"comment_text"`
}

func (u *ModelProviderUpdate) Validate() error {
	return errors.Join(
		checkLength("provider_name_str", u.ProviderName, 255),
		checkLength("provider_type_str", u.ProviderType, 40),
		checkLength("api_key_str", u.APIKey, 500),
		checkLength("api_base_url_str", u.APIBaseURL, 500),
		checkLength("extra_config_json", u.ExtraConfig, 2000),
		checkLength("comment_text", u.Comment, 500),
	)
}

func (u *ModelProviderUpdate) Apply(p *ModelProvider) []string {
	var changed []string
	changed = applyValue(&p.ProviderName, u.ProviderName, "provider_name_str", changed)
	changed = applyValue(&p.ProviderType, u.ProviderType, "provider_type_str", changed)
	changed = applyNullable(&p.APIKey, u.APIKey, "api_key_str", changed)
	changed = applyNullable(&p.APIBaseURL, u.APIBaseURL, "api_base_url_str", changed)
	changed = applyNullable(&p.ExtraConfig, u.ExtraConfig, "extra_config_json", changed)
	changed = applyNullable(&p.Comment, u.Comment, "comment_text", changed)
	return changed
}
