package schedule

import (
	"time"

	"fairshift/domain"
	"fairshift/domain/ledger"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const DefaultCooldownDays = 3

// CooldownMembers ids of members holding an assignment on any shift dated
// within the window [date-days, date-1]. Recomputed per call, the window is
// a moving function of each shift's own date.
func CooldownMembers(date time.Time, days int, tx *gorm.DB) (map[types.ID]bool, error) {
	dayBegin := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	windowBegin := dayBegin.AddDate(0, 0, -days)

	var shifts []domain.Shift
	if err := tx.Where("date >= ? AND date < ?", windowBegin, dayBegin).Find(&shifts).Error; err != nil {
		return nil, err
	}
	cooldown := map[types.ID]bool{}
	if len(shifts) == 0 {
		return cooldown, nil
	}

	shiftIDs := make([]types.ID, 0, len(shifts))
	for _, s := range shifts {
		shiftIDs = append(shiftIDs, s.ID)
	}
	var assignments []domain.Assignment
	if err := tx.Where("shift_id IN (?)", shiftIDs).Find(&assignments).Error; err != nil {
		return nil, err
	}
	for _, a := range assignments {
		cooldown[a.MemberID] = true
	}
	return cooldown, nil
}

// LoadIndexOf count of prior assignments per member, a weighting/reporting
// input only, never a hard filter.
func LoadIndexOf(memberIDs []types.ID, tx *gorm.DB) (map[types.ID]int, error) {
	loads := map[types.ID]int{}
	for _, id := range memberIDs {
		loads[id] = 0
	}
	if len(memberIDs) == 0 {
		return loads, nil
	}

	rows, err := tx.Model(&domain.Assignment{}).Where("member_id IN (?)", memberIDs).
		Select("member_id, COUNT(*)").Group("member_id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var memberID types.ID
		var count int
		if err := rows.Scan(&memberID, &count); err != nil {
			return nil, err
		}
		loads[memberID] = count
	}
	return loads, nil
}

// ResponsibilityMalusOf accumulated penalty signal per member: the sum of
// the member's negative ledger entries.
func ResponsibilityMalusOf(memberIDs []types.ID, tx *gorm.DB) (map[types.ID]int, error) {
	maluses := map[types.ID]int{}
	for _, id := range memberIDs {
		maluses[id] = 0
	}
	if len(memberIDs) == 0 {
		return maluses, nil
	}

	rows, err := tx.Model(&ledger.EntryRecord{}).
		Where("member_id IN (?) AND points < 0", memberIDs).
		Select("member_id, SUM(points)").Group("member_id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var memberID types.ID
		var total int
		if err := rows.Scan(&memberID, &total); err != nil {
			return nil, err
		}
		maluses[memberID] = total
	}
	return maluses, nil
}
