package domain

import (
	"github.com/fundwit/go-commons/types"
)

type Member struct {
	ID       types.ID `json:"id" gorm:"primary_key"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6)"`
}

func (r *Member) TableName() string {
	return "members"
}

// CommitteeMember relation of a member to one committee, a member may sit in
// zero or more committees.
type CommitteeMember struct {
	MemberID  types.ID `json:"memberId" gorm:"primary_key" sql:"type:BIGINT UNSIGNED NOT NULL"`
	Committee string   `json:"committee" gorm:"primary_key"`
}

func (r *CommitteeMember) TableName() string {
	return "committee_members"
}
