package domain

import (
	"github.com/fundwit/go-commons/types"
)

type Task struct {
	ID   types.ID `json:"id" gorm:"primary_key"`
	Name string   `json:"name"`

	AssigneeID types.ID        `json:"assigneeId" sql:"type:BIGINT UNSIGNED NOT NULL"`
	DueDate    types.Timestamp `json:"dueDate" sql:"type:DATETIME(6)"`

	Done     bool            `json:"done"`
	DoneTime types.Timestamp `json:"doneTime" sql:"type:DATETIME(6)"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6)"`
}

func (r *Task) TableName() string {
	return "tasks"
}
