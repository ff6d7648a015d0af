package domain

import (
	"github.com/fundwit/go-commons/types"
)

type AttendanceStatus string

const (
	StatusAssigned    AttendanceStatus = "ASSIGNED"
	StatusAttended    AttendanceStatus = "ATTENDED"
	StatusNotAttended AttendanceStatus = "NOT_ATTENDED"
)

// Assignment relates one shift to one originally assigned member.
// ReplacementMemberID is a denormalized pointer, only meaningful when
// Status is NOT_ATTENDED and a stand-in was arranged.
type Assignment struct {
	ID       types.ID `json:"id" gorm:"primary_key"`
	ShiftID  types.ID `json:"shiftId" sql:"type:BIGINT UNSIGNED NOT NULL"`
	MemberID types.ID `json:"memberId" sql:"type:BIGINT UNSIGNED NOT NULL"`

	Status              AttendanceStatus `json:"status"`
	ReplacementMemberID types.ID         `json:"replacementMemberId"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6)"`
}

func (r *Assignment) TableName() string {
	return "assignments"
}
