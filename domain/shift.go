package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Shift is a time-boxed unit of work to be staffed. Shifts created together
// for one logical event share the same Group value (e.g. a multi-slot sale day).
type Shift struct {
	ID    types.ID `json:"id" gorm:"primary_key"`
	Name  string   `json:"name"`
	Group string   `json:"group"`

	Date      types.Timestamp `json:"date" sql:"type:DATETIME(6)"`
	BeginTime types.Timestamp `json:"beginTime" sql:"type:DATETIME(6)"`
	EndTime   types.Timestamp `json:"endTime" sql:"type:DATETIME(6)"`

	RequiredSlots int `json:"requiredSlots"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6)"`
}

func (r *Shift) TableName() string {
	return "shifts"
}
