package shift

import (
	"context"
	"errors"
	"sort"

	"fairshift/bizerror"
	"fairshift/common"
	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/domain/schedule"
	"fairshift/idgen"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	shiftIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateShiftsFunc     = CreateShifts
	DeleteShiftFunc      = DeleteShift
	DeleteShiftGroupFunc = DeleteShiftGroup
	QueryShiftsFunc      = QueryShifts
)

type ShiftCreation struct {
	Name  string `json:"name" binding:"required"`
	Group string `json:"group"`

	Date      types.Timestamp `json:"date"`
	BeginTime types.Timestamp `json:"beginTime"`
	EndTime   types.Timestamp `json:"endTime"`

	RequiredSlots int `json:"requiredSlots"`
}

type ShiftBatchCreation struct {
	Shifts       []ShiftCreation `json:"shifts" binding:"required,dive"`
	CooldownDays int             `json:"cooldownDays"`
}

type ShiftCreationFailure struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ShiftBatchResult struct {
	Shifts      []domain.Shift         `json:"shifts"`
	Assignments []domain.Assignment    `json:"assignments"`
	Failures    []ShiftCreationFailure `json:"failures"`
}

type ShiftDetail struct {
	domain.Shift

	Assignments []domain.Assignment `json:"assignments"`
}

// CreateShifts create a batch of shifts (e.g. the slots of one sale day) and
// staff them in one selector run over the whole batch ordered by date.
// An invalid item is reported and dropped, the rest of the batch proceeds.
// Creation commits before staffing starts: a staffing failure leaves the
// new shifts persisted but unstaffed, and a later staffing run over the
// same ids completes them.
func CreateShifts(batch *ShiftBatchCreation, ctx context.Context) (*ShiftBatchResult, error) {
	result := ShiftBatchResult{Shifts: []domain.Shift{}, Assignments: []domain.Assignment{}, Failures: []ShiftCreationFailure{}}

	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range batch.Shifts {
			if c.RequiredSlots <= 0 {
				result.Failures = append(result.Failures, ShiftCreationFailure{Name: c.Name, Message: "shift needs a positive required-slots count"})
				continue
			}
			if c.Date.Time().IsZero() {
				result.Failures = append(result.Failures, ShiftCreationFailure{Name: c.Name, Message: "shift needs a date"})
				continue
			}
			record := domain.Shift{
				ID: idgen.NextID(shiftIdWorker), Name: c.Name, Group: c.Group,
				Date: c.Date, BeginTime: c.BeginTime, EndTime: c.EndTime,
				RequiredSlots: c.RequiredSlots, CreateTime: types.CurrentTimestamp(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			result.Shifts = append(result.Shifts, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(result.Failures) > 0 {
		common.Log.Warnf("shift batch creation dropped %d invalid items", len(result.Failures))
	}
	if len(result.Shifts) == 0 {
		return &result, nil
	}

	// staff the whole batch in one run, chronological order
	ordered := make([]domain.Shift, len(result.Shifts))
	copy(ordered, result.Shifts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Time().Equal(ordered[j].Date.Time()) {
			return ordered[i].Date.Time().Before(ordered[j].Date.Time())
		}
		return ordered[i].BeginTime.Time().Before(ordered[j].BeginTime.Time())
	})
	shiftIDs := make([]types.ID, 0, len(ordered))
	for _, s := range ordered {
		shiftIDs = append(shiftIDs, s.ID)
	}

	assignments, err := schedule.StaffShiftsFunc(shiftIDs, batch.CooldownDays, schedule.NewRandFunc(), ctx)
	if err != nil {
		return nil, err
	}
	result.Assignments = assignments
	return &result, nil
}

type ShiftQuery struct {
	Group string `json:"group" form:"group"`
}

func QueryShifts(query *ShiftQuery, ctx context.Context) ([]ShiftDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	q := db.Order("date ASC, begin_time ASC")
	if query.Group != "" {
		q = q.Where(&domain.Shift{Group: query.Group})
	}
	var shifts []domain.Shift
	if err := q.Find(&shifts).Error; err != nil {
		return nil, err
	}

	details := make([]ShiftDetail, 0, len(shifts))
	for _, s := range shifts {
		var assignments []domain.Assignment
		if err := db.Where(&domain.Assignment{ShiftID: s.ID}).Order("id ASC").Find(&assignments).Error; err != nil {
			return nil, err
		}
		details = append(details, ShiftDetail{Shift: s, Assignments: assignments})
	}
	return details, nil
}

// DeleteShift remove a shift, its assignments and the ledger entries those
// assignments emitted, so no score keeps counting a deleted shift.
func DeleteShift(id types.ID, ctx context.Context) error {
	return persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		record := domain.Shift{}
		if err := tx.Where(&domain.Shift{ID: id}).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bizerror.ErrShiftNotFound
			}
			return err
		}
		return deleteShiftInTx(id, tx)
	})
}

// DeleteShiftGroup cascade deletion over every shift of one event group.
func DeleteShiftGroup(group string, ctx context.Context) error {
	return persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		var shifts []domain.Shift
		if err := tx.Where(&domain.Shift{Group: group}).Find(&shifts).Error; err != nil {
			return err
		}
		for _, s := range shifts {
			if err := deleteShiftInTx(s.ID, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteShiftInTx(id types.ID, tx *gorm.DB) error {
	var assignments []domain.Assignment
	if err := tx.Where(&domain.Assignment{ShiftID: id}).Find(&assignments).Error; err != nil {
		return err
	}
	for _, a := range assignments {
		if err := ledger.DeleteEntriesBySource(ledger.SourceTypeAssignment, a.ID, tx); err != nil {
			return err
		}
	}
	if err := tx.Delete(domain.Assignment{}, "shift_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(domain.Shift{}, "id = ?", id).Error
}
