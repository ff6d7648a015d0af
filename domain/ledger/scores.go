package ledger

import (
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
)

// scoreCache is a pure projection over the ledger. It is dropped for a
// member on every ledger mutation touching that member, never patched
// incrementally.
var scoreCache = cache.New(5*time.Minute, 10*time.Minute)

func invalidateScore(memberID types.ID) {
	scoreCache.Delete(memberID.String())
}

// ScoreOf total score of one member: sum(points) over the member's entries.
func ScoreOf(memberID types.ID, tx *gorm.DB) (int, error) {
	if cached, found := scoreCache.Get(memberID.String()); found {
		return cached.(int), nil
	}

	var total int
	row := tx.Model(&EntryRecord{}).Where("member_id = ?", memberID).
		Select("COALESCE(SUM(points), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	scoreCache.SetDefault(memberID.String(), total)
	return total, nil
}

// ScoresOf totals for a set of members in one aggregation, members without
// any entry are reported with score 0. Computed from the ledger directly,
// bypassing the cache, so a staffing run always weighs fresh totals.
func ScoresOf(memberIDs []types.ID, tx *gorm.DB) (map[types.ID]int, error) {
	scores := map[types.ID]int{}
	for _, id := range memberIDs {
		scores[id] = 0
	}
	if len(memberIDs) == 0 {
		return scores, nil
	}

	rows, err := tx.Model(&EntryRecord{}).Where("member_id IN (?)", memberIDs).
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
		scores[memberID] = total
	}
	return scores, nil
}

type ScoreBreakdown struct {
	MemberID types.ID `json:"memberId"`
	Total    int      `json:"total"`

	TaskPoints     int `json:"taskPoints"`
	ShiftPoints    int `json:"shiftPoints"`
	MaterialPoints int `json:"materialPoints"`
}

// category buckets for breakdown reporting. MANUAL_ADJUSTMENT and
// REPLACEMENT_ARRANGED count toward the total only.
var taskCategories = []Category{CategoryTaskCompleted, CategoryTaskLate, CategoryTaskMissed}
var shiftCategories = []Category{CategoryShiftCompleted, CategoryShiftMissed}
var materialCategories = []Category{CategoryMaterialSmall, CategoryMaterialMedium, CategoryMaterialLarge}

func categoryIn(c Category, bucket []Category) bool {
	for _, b := range bucket {
		if c == b {
			return true
		}
	}
	return false
}

// BreakdownOf total plus per-bucket subtotals, aggregated on demand.
func BreakdownOf(memberID types.ID, tx *gorm.DB) (*ScoreBreakdown, error) {
	breakdown := ScoreBreakdown{MemberID: memberID}

	rows, err := tx.Model(&EntryRecord{}).Where("member_id = ?", memberID).
		Select("category, SUM(points)").Group("category").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category Category
		var points int
		if err := rows.Scan(&category, &points); err != nil {
			return nil, err
		}
		breakdown.Total += points
		if categoryIn(category, taskCategories) {
			breakdown.TaskPoints += points
		} else if categoryIn(category, shiftCategories) {
			breakdown.ShiftPoints += points
		} else if categoryIn(category, materialCategories) {
			breakdown.MaterialPoints += points
		}
	}
	return &breakdown, nil
}
