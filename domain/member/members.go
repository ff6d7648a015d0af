package member

import (
	"context"

	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/idgen"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

var (
	memberIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateMemberFunc = CreateMember
	QueryMembersFunc = QueryMembers
)

type MemberCreation struct {
	Name     string `json:"name" binding:"required"`
	Nickname string `json:"nickname"`
}

type MemberWithScore struct {
	domain.Member

	Score      int      `json:"score"`
	Committees []string `json:"committees"`
}

func CreateMember(c *MemberCreation, ctx context.Context) (*domain.Member, error) {
	record := domain.Member{
		ID: idgen.NextID(memberIdWorker), Name: c.Name, Nickname: c.Nickname,
		CreateTime: types.CurrentTimestamp(),
	}
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// QueryMembers the directory listing with live-aggregated scores, the read
// contract the selector and the organizer pages build on.
func QueryMembers(ctx context.Context) ([]MemberWithScore, error) {
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

	var relations []domain.CommitteeMember
	if err := db.Find(&relations).Error; err != nil {
		return nil, err
	}
	committees := map[types.ID][]string{}
	for _, r := range relations {
		committees[r.MemberID] = append(committees[r.MemberID], r.Committee)
	}

	listed := make([]MemberWithScore, 0, len(members))
	for _, m := range members {
		listed = append(listed, MemberWithScore{Member: m, Score: scores[m.ID], Committees: committees[m.ID]})
	}
	return listed, nil
}
