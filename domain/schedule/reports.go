package schedule

import (
	"context"

	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
)

type FairnessReportEntry struct {
	MemberID types.ID `json:"memberId"`
	Name     string   `json:"name"`

	Score               int `json:"score"`
	LoadIndex           int `json:"loadIndex"`
	ResponsibilityMalus int `json:"responsibilityMalus"`
}

var FairnessReportFunc = FairnessReport

// FairnessReport per-member weighting inputs of the selector, for organizers
// to inspect why the selector leans the way it does.
func FairnessReport(ctx context.Context) ([]FairnessReportEntry, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	var members []domain.Member
	if err := db.Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	memberIDs := make([]types.ID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	scores, err := ledger.ScoresOf(memberIDs, db)
	if err != nil {
		return nil, err
	}
	loads, err := LoadIndexOf(memberIDs, db)
	if err != nil {
		return nil, err
	}
	maluses, err := ResponsibilityMalusOf(memberIDs, db)
	if err != nil {
		return nil, err
	}

	report := make([]FairnessReportEntry, 0, len(members))
	for _, m := range members {
		report = append(report, FairnessReportEntry{
			MemberID: m.ID, Name: m.Name,
			Score: scores[m.ID], LoadIndex: loads[m.ID], ResponsibilityMalus: maluses[m.ID],
		})
	}
	return report, nil
}
