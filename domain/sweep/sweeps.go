package sweep

import (
	"context"
	"time"

	"fairshift/domain"
	"fairshift/domain/attendance"
	"fairshift/domain/ledger"
	"fairshift/domain/task"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	CreditPastShiftsFunc     = CreditPastShifts
	PenalizeOverdueTasksFunc = PenalizeOverdueTasks
)

// CreditPastShifts credit every assignment on a shift whose date has passed
// with one shift-completed entry. An assignment already driven to a terminal
// attendance state is left alone, and the no-duplicate-source-ref guard
// makes the sweep safe to trigger on every page load.
func CreditPastShifts(now time.Time, ctx context.Context) (int, error) {
	dayBegin := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	credited := 0
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		var shifts []domain.Shift
		if err := tx.Where("date < ?", dayBegin).Find(&shifts).Error; err != nil {
			return err
		}
		if len(shifts) == 0 {
			return nil
		}
		shiftIDs := make([]types.ID, 0, len(shifts))
		for _, s := range shifts {
			shiftIDs = append(shiftIDs, s.ID)
		}

		var assignments []domain.Assignment
		if err := tx.Where("shift_id IN (?) AND status = ?", shiftIDs, domain.StatusAssigned).
			Find(&assignments).Error; err != nil {
			return err
		}
		for _, a := range assignments {
			emitted, err := ledger.HasEntryOfSource(ledger.SourceTypeAssignment, a.ID, tx)
			if err != nil {
				return err
			}
			if emitted {
				continue
			}
			if _, err := ledger.AppendEntry(ledger.Entry{
				MemberID: a.MemberID, Category: ledger.CategoryShiftCompleted,
				Points: attendance.ShiftCompletedPoints,
				SourceType: ledger.SourceTypeAssignment, SourceID: a.ID,
			}, tx); err != nil {
				return err
			}
			credited++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return credited, nil
}

// PenalizeOverdueTasks emit one task-missed entry per overdue undone task,
// following the same emit-once pattern. Finishing the task afterwards
// corrects the penalty away by source reference.
func PenalizeOverdueTasks(now time.Time, ctx context.Context) (int, error) {
	dayBegin := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	penalized := 0
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		var tasks []domain.Task
		if err := tx.Where("done = ? AND due_date < ?", false, dayBegin).Find(&tasks).Error; err != nil {
			return err
		}
		for _, t := range tasks {
			emitted, err := ledger.HasEntryOfSource(ledger.SourceTypeTask, t.ID, tx)
			if err != nil {
				return err
			}
			if emitted {
				continue
			}
			if _, err := ledger.AppendEntry(ledger.Entry{
				MemberID: t.AssigneeID, Category: ledger.CategoryTaskMissed,
				Points: task.TaskMissedPoints,
				SourceType: ledger.SourceTypeTask, SourceID: t.ID,
			}, tx); err != nil {
				return err
			}
			penalized++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return penalized, nil
}
