package schedule

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"fairshift/common"
	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/idgen"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	assignmentIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	StaffShiftsFunc = StaffShifts

	// NewRandFunc builds the random source for one staffing run, replaced
	// with a seeded source in tests for reproducible selections.
	NewRandFunc = func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }
)

// StaffShifts run the fair selector over a batch of shifts created together.
// Shifts are processed in the caller-given order (callers pass chronological)
// and share one already-used set, so no member is double-booked across the
// slots of the same batch. A member is eligible for a shift when not already
// on that shift, not already used in this batch, and not in the cooldown set
// for the shift's date. Too few eligible members leaves the shift
// understaffed, which is an expected outcome, not an error.
func StaffShifts(shiftIDs []types.ID, cooldownDays int, rng *rand.Rand, ctx context.Context) ([]domain.Assignment, error) {
	if cooldownDays <= 0 {
		cooldownDays = DefaultCooldownDays
	}

	created := []domain.Assignment{}
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		var members []domain.Member
		if err := tx.Order("id ASC").Find(&members).Error; err != nil {
			return err
		}
		memberIDs := make([]types.ID, 0, len(members))
		for _, m := range members {
			memberIDs = append(memberIDs, m.ID)
		}
		scores, err := ledger.ScoresOf(memberIDs, tx)
		if err != nil {
			return err
		}

		usedInBatch := map[types.ID]bool{}
		for _, shiftID := range shiftIDs {
			shift := domain.Shift{}
			if err := tx.Where(&domain.Shift{ID: shiftID}).First(&shift).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					common.Log.Warnf("staffing skipped unknown shift %v", shiftID)
					continue
				}
				return err
			}

			var existing []domain.Assignment
			if err := tx.Where(&domain.Assignment{ShiftID: shift.ID}).Find(&existing).Error; err != nil {
				return err
			}
			needed := shift.RequiredSlots - len(existing)
			if needed <= 0 {
				continue
			}
			alreadyOnShift := map[types.ID]bool{}
			for _, a := range existing {
				alreadyOnShift[a.MemberID] = true
			}

			cooldown, err := CooldownMembers(shift.Date.Time(), cooldownDays, tx)
			if err != nil {
				return err
			}

			pool := []Candidate{}
			for _, m := range members {
				if alreadyOnShift[m.ID] || usedInBatch[m.ID] || cooldown[m.ID] {
					continue
				}
				pool = append(pool, Candidate{MemberID: m.ID, Score: scores[m.ID]})
			}

			for _, memberID := range SelectMembers(pool, needed, rng) {
				assignment := domain.Assignment{
					ID: idgen.NextID(assignmentIdWorker), ShiftID: shift.ID, MemberID: memberID,
					Status: domain.StatusAssigned, CreateTime: types.CurrentTimestamp(),
				}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
				usedInBatch[memberID] = true
				created = append(created, assignment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
