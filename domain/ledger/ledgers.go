package ledger

import (
	"fairshift/idgen"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	entryIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	AppendEntryFunc    = AppendEntry
	CorrectEntriesFunc = CorrectEntries
)

// AppendEntry pure insert of one ledger entry, existing rows are never touched.
func AppendEntry(e Entry, tx *gorm.DB) (*EntryRecord, error) {
	record := &EntryRecord{
		ID:        idgen.NextID(entryIdWorker),
		Entry:     e,
		Timestamp: types.CurrentTimestamp(),
	}
	if err := tx.Create(record).Error; err != nil {
		return nil, err
	}
	invalidateScore(e.MemberID)
	return record, nil
}

// DeleteEntriesBySource remove every entry tied to one source reference.
func DeleteEntriesBySource(sourceType string, sourceID types.ID, tx *gorm.DB) error {
	var affected []EntryRecord
	if err := tx.Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Find(&affected).Error; err != nil {
		return err
	}
	if err := tx.Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Delete(EntryRecord{}).Error; err != nil {
		return err
	}
	for _, record := range affected {
		invalidateScore(record.MemberID)
	}
	return nil
}

// CorrectEntries revise all scoring of one source reference: delete every
// entry matching the source, then reinsert the given entries. Running the
// same correction twice leaves the same ledger state, which also makes
// retry the recovery path after a partial failure.
func CorrectEntries(sourceType string, sourceID types.ID, entries []Entry, tx *gorm.DB) error {
	if err := DeleteEntriesBySource(sourceType, sourceID, tx); err != nil {
		return err
	}
	for _, e := range entries {
		e.SourceType = sourceType
		e.SourceID = sourceID
		if _, err := AppendEntry(e, tx); err != nil {
			return err
		}
	}
	return nil
}

// HasEntryOfSource emit-once guard used by the sweeps.
func HasEntryOfSource(sourceType string, sourceID types.ID, tx *gorm.DB) (bool, error) {
	var count int
	if err := tx.Model(&EntryRecord{}).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func ListEntriesOfMember(memberID types.ID, tx *gorm.DB) ([]EntryRecord, error) {
	records := []EntryRecord{}
	if err := tx.Where(&EntryRecord{Entry: Entry{MemberID: memberID}}).
		Order("timestamp ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
