package ledger

import (
	"github.com/fundwit/go-commons/types"
)

type Category string

const (
	CategoryTaskCompleted Category = "TASK_COMPLETED"
	CategoryTaskLate      Category = "TASK_LATE"
	CategoryTaskMissed    Category = "TASK_MISSED"

	CategoryShiftCompleted Category = "SHIFT_COMPLETED"
	CategoryShiftMissed    Category = "SHIFT_MISSED"

	CategoryReplacementArranged Category = "REPLACEMENT_ARRANGED"

	CategoryMaterialSmall  Category = "MATERIAL_SMALL"
	CategoryMaterialMedium Category = "MATERIAL_MEDIUM"
	CategoryMaterialLarge  Category = "MATERIAL_LARGE"

	CategoryManualAdjustment Category = "MANUAL_ADJUSTMENT"
)

const (
	SourceTypeAssignment = "ASSIGNMENT"
	SourceTypeTask       = "TASK"
	SourceTypeMaterial   = "MATERIAL"
	SourceTypeManual     = "MANUAL"
)

// Entry is the immutable unit of scoring. The source reference
// (SourceType, SourceID) ties the entry back to the decision that caused it
// and is the correction key: revising a decision deletes all entries of its
// source reference before reinserting, never updates in place.
type Entry struct {
	MemberID types.ID `json:"memberId" sql:"type:BIGINT UNSIGNED NOT NULL"`
	Category Category `json:"category"`
	Points   int      `json:"points"`

	SourceType string   `json:"sourceType"`
	SourceID   types.ID `json:"sourceId"`
}

type EntryRecord struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Entry

	Timestamp types.Timestamp `json:"timestamp" sql:"type:DATETIME(6)"`
}

func (r *EntryRecord) TableName() string {
	return "ledger_entries"
}
