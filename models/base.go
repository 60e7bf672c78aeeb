package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultOwner is stored on records created without an owner.
const DefaultOwner = "user_id"

// Base is the field-set shared by every record kind. It is embedded by value.
type Base struct {
	ID        string    `gorm:"column:id_str;primaryKey;size:36" json:"id_str"`
	Owner     string    `gorm:"column:user_id_str;size:100;index;not null" json:"user_id_str"`
	Deleted   bool      `gorm:"column:is_deleted_flag;not null" json:"is_deleted_flag"`
	CreatedAt time.Time `gorm:"column:created_at_time;autoCreateTime:false;not null" json:"created_at_time"`
	UpdatedAt time.Time `gorm:"column:updated_at_time;autoUpdateTime:false;index;not null" json:"updated_at_time"`
}

// Record is implemented by pointers to every record kind.
type Record interface {
	TableName() string
	GetID() string
	GetOwner() string
	IsDeleted() bool
	Meta() *Base
}

func (b *Base) GetID() string {
	return b.ID
}

func (b *Base) GetOwner() string {
	return b.Owner
}

func (b *Base) IsDeleted() bool {
	return b.Deleted
}

func (b *Base) Meta() *Base {
	return b
}

func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Owner == "" {
		b.Owner = DefaultOwner
	}
	return
}

// All returns one zero value of every record kind, in creation order.
func All() []interface{} {
	return []interface{}{
		&WorkflowDefinition{},
		&WorkflowJob{},
		&ModelProvider{},
		&DeepLearningModel{},
	}
}
