package ledger

import (
	"context"
	"errors"
	"strings"

	"fairshift/bizerror"
	"fairshift/idgen"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// fixed material contribution values
const (
	MaterialSmallPoints  = 2
	MaterialMediumPoints = 4
	MaterialLargePoints  = 8
)

var materialPoints = map[Category]int{
	CategoryMaterialSmall:  MaterialSmallPoints,
	CategoryMaterialMedium: MaterialMediumPoints,
	CategoryMaterialLarge:  MaterialLargePoints,
}

var (
	RecordMaterialContributionFunc = RecordMaterialContribution
	RecordManualAdjustmentFunc     = RecordManualAdjustment
)

type MaterialContributionCreation struct {
	MemberID types.ID `json:"memberId" form:"memberId" binding:"required"`
	Size     string   `json:"size" form:"size" binding:"required,oneof=small medium large"`
}

type ManualAdjustmentCreation struct {
	MemberID types.ID `json:"memberId" form:"memberId" binding:"required"`
	Points   int      `json:"points" form:"points" binding:"required"`
}

// RecordMaterialContribution append a material contribution entry with the
// fixed value of its size. Each contribution is its own source reference.
func RecordMaterialContribution(c *MaterialContributionCreation, ctx context.Context) (*EntryRecord, error) {
	category := Category("MATERIAL_" + strings.ToUpper(c.Size))
	points, found := materialPoints[category]
	if !found {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("unknown material size " + c.Size)}
	}

	var record *EntryRecord
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		sourceID := idgen.NextID(entryIdWorker)
		var err error
		record, err = AppendEntry(Entry{
			MemberID: c.MemberID, Category: category, Points: points,
			SourceType: SourceTypeMaterial, SourceID: sourceID,
		}, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// RecordManualAdjustment organizer-granted points outside every bucket.
func RecordManualAdjustment(c *ManualAdjustmentCreation, ctx context.Context) (*EntryRecord, error) {
	var record *EntryRecord
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		sourceID := idgen.NextID(entryIdWorker)
		var err error
		record, err = AppendEntry(Entry{
			MemberID: c.MemberID, Category: CategoryManualAdjustment, Points: c.Points,
			SourceType: SourceTypeManual, SourceID: sourceID,
		}, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
