package attendance

import (
	"context"
	"errors"

	"fairshift/bizerror"
	"fairshift/common"
	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// fixed attendance point values. Arranging a stand-in earns less than
// performing the shift, missing without one costs more than the arranged
// credit is worth.
const (
	ShiftCompletedPoints      = 10
	ReplacementArrangedPoints = 4
	ShiftMissedPoints         = -6
)

var (
	UpdateAttendanceFunc  = UpdateAttendance
	UpdateAttendancesFunc = UpdateAttendances
)

type AttendanceUpdate struct {
	AssignmentID types.ID                `json:"assignmentId" form:"assignmentId" binding:"required"`
	Status       domain.AttendanceStatus `json:"status" form:"status" binding:"required"`

	ReplacementMemberID types.ID `json:"replacementMemberId" form:"replacementMemberId"`
}

type AttendanceUpdateFailure struct {
	AssignmentID types.ID `json:"assignmentId"`
	Message      string   `json:"message"`
}

// UpdateAttendance drive one assignment to a terminal attendance state and
// emit the matching ledger entries. The emission always runs as a correction
// keyed by the assignment id: every prior entry of this assignment is
// deleted before the new ones are inserted. Re-deciding a past outcome is
// therefore the same operation as deciding it the first time, and applying
// the same decision twice leaves the ledger unchanged.
func UpdateAttendance(u *AttendanceUpdate, ctx context.Context) (*domain.Assignment, error) {
	entriesFor, err := emissionsFor(u)
	if err != nil {
		return nil, err
	}

	var updated domain.Assignment
	err = persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		assignment := domain.Assignment{}
		if err := tx.Where(&domain.Assignment{ID: u.AssignmentID}).First(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bizerror.ErrAssignmentNotFound
			}
			return err
		}

		if u.Status == domain.StatusNotAttended && u.ReplacementMemberID != 0 {
			if u.ReplacementMemberID == assignment.MemberID {
				return bizerror.ErrReplacementIsAssignee
			}
			count := 0
			if err := tx.Model(&domain.Member{}).Where("id = ?", u.ReplacementMemberID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return bizerror.ErrMemberNotFound
			}
		}

		if err := ledger.CorrectEntriesFunc(ledger.SourceTypeAssignment, assignment.ID,
			entriesFor(assignment.MemberID), tx); err != nil {
			return err
		}

		replacement := types.ID(0)
		if u.Status == domain.StatusNotAttended {
			replacement = u.ReplacementMemberID
		}
		if err := tx.Model(&domain.Assignment{}).Where("id = ?", assignment.ID).
			Updates(map[string]interface{}{"status": u.Status, "replacement_member_id": replacement}).Error; err != nil {
			return err
		}

		updated = assignment
		updated.Status = u.Status
		updated.ReplacementMemberID = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAttendances bulk variant for an organizer closing out a whole shift
// day. One bad item is reported and skipped, the rest of the batch goes on.
func UpdateAttendances(updates []AttendanceUpdate, ctx context.Context) []AttendanceUpdateFailure {
	failures := []AttendanceUpdateFailure{}
	for i := range updates {
		if _, err := UpdateAttendanceFunc(&updates[i], ctx); err != nil {
			common.Log.Warnf("attendance update of assignment %v failed: %v", updates[i].AssignmentID, err)
			failures = append(failures, AttendanceUpdateFailure{AssignmentID: updates[i].AssignmentID, Message: err.Error()})
		}
	}
	return failures
}

// emissionsFor the ledger entries a terminal state stands for. The entries
// depend on the assignment's original member, which is only known once the
// row is loaded, hence the closure.
func emissionsFor(u *AttendanceUpdate) (func(memberID types.ID) []ledger.Entry, error) {
	switch u.Status {
	case domain.StatusAttended:
		return func(memberID types.ID) []ledger.Entry {
			return []ledger.Entry{
				{MemberID: memberID, Category: ledger.CategoryShiftCompleted, Points: ShiftCompletedPoints},
			}
		}, nil
	case domain.StatusNotAttended:
		if u.ReplacementMemberID == 0 {
			return func(memberID types.ID) []ledger.Entry {
				return []ledger.Entry{
					{MemberID: memberID, Category: ledger.CategoryShiftMissed, Points: ShiftMissedPoints},
				}
			}, nil
		}
		replacement := u.ReplacementMemberID
		return func(memberID types.ID) []ledger.Entry {
			return []ledger.Entry{
				{MemberID: memberID, Category: ledger.CategoryReplacementArranged, Points: ReplacementArrangedPoints},
				{MemberID: replacement, Category: ledger.CategoryShiftCompleted, Points: ShiftCompletedPoints},
			}
		}, nil
	default:
		return nil, bizerror.ErrUnknownStatus
	}
}
