package ledger_test

import (
	"context"
	"testing"

	"fairshift/domain/ledger"
	"fairshift/testinfra"

	. "github.com/onsi/gomega"
)

func TestRecordMaterialContribution(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should append a material entry with the fixed value of its size", func(t *testing.T) {
		defer ledgerTestTeardown(t, testDatabase)
		ledgerTestSetup(t, &testDatabase)

		record, err := ledger.RecordMaterialContribution(
			&ledger.MaterialContributionCreation{MemberID: 201, Size: "medium"}, context.Background())
		Expect(err).To(BeNil())
		Expect(record.Category).To(Equal(ledger.CategoryMaterialMedium))
		Expect(record.Points).To(Equal(ledger.MaterialMediumPoints))
		Expect(record.SourceType).To(Equal(ledger.SourceTypeMaterial))
		Expect(record.SourceID).ToNot(BeZero())

		breakdown, err := ledger.BreakdownOf(201, testDatabase.DS.GormDB(nil))
		Expect(err).To(BeNil())
		Expect(breakdown.MaterialPoints).To(Equal(ledger.MaterialMediumPoints))
		Expect(breakdown.Total).To(Equal(ledger.MaterialMediumPoints))
	})

	t.Run("should reject an unknown size", func(t *testing.T) {
		defer ledgerTestTeardown(t, testDatabase)
		ledgerTestSetup(t, &testDatabase)

		_, err := ledger.RecordMaterialContribution(
			&ledger.MaterialContributionCreation{MemberID: 202, Size: "huge"}, context.Background())
		Expect(err).ToNot(BeNil())
	})
}

func TestRecordManualAdjustment(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should count toward the total but no bucket", func(t *testing.T) {
		defer ledgerTestTeardown(t, testDatabase)
		ledgerTestSetup(t, &testDatabase)

		record, err := ledger.RecordManualAdjustment(
			&ledger.ManualAdjustmentCreation{MemberID: 211, Points: -3}, context.Background())
		Expect(err).To(BeNil())
		Expect(record.Category).To(Equal(ledger.CategoryManualAdjustment))

		breakdown, err := ledger.BreakdownOf(211, testDatabase.DS.GormDB(nil))
		Expect(err).To(BeNil())
		Expect(breakdown.Total).To(Equal(-3))
		Expect(breakdown.TaskPoints).To(BeZero())
		Expect(breakdown.ShiftPoints).To(BeZero())
		Expect(breakdown.MaterialPoints).To(BeZero())
	})
}
