package shift_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"fairshift/bizerror"
	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/domain/schedule"
	"fairshift/domain/shift"
	"fairshift/persistence"
	"fairshift/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func shiftTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartTestDatabase("fairshift")
	*testDatabase = db
	Expect(db.DS.GormDB(nil).AutoMigrate(
		&domain.Member{}, &domain.Shift{}, &domain.Assignment{}, &ledger.EntryRecord{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS

	schedule.NewRandFunc = func() *rand.Rand { return rand.New(rand.NewSource(1)) }
}

func shiftTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	testinfra.StopTestDatabase(testDatabase)
}

func TestCreateShifts(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should create and staff a batch sharing one exclusion set", func(t *testing.T) {
		defer shiftTestTeardown(t, testDatabase)
		shiftTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		testinfra.BuildMember(701, "m1", db)
		testinfra.BuildMember(702, "m2", db)

		day := types.TimestampOfDate(2021, 10, 2, 0, 0, 0, 0, time.Local)
		result, err := shift.CreateShifts(&shift.ShiftBatchCreation{Shifts: []shift.ShiftCreation{
			{Name: "sale morning", Group: "sale day", Date: day, RequiredSlots: 1},
			{Name: "sale afternoon", Group: "sale day", Date: day, RequiredSlots: 1},
		}}, context.Background())
		Expect(err).To(BeNil())
		Expect(len(result.Shifts)).To(Equal(2))
		Expect(len(result.Failures)).To(BeZero())
		Expect(len(result.Assignments)).To(Equal(2))

		// one member per slot, nobody twice in the same batch
		Expect(result.Assignments[0].MemberID).ToNot(Equal(result.Assignments[1].MemberID))
	})

	t.Run("should drop invalid items and keep the rest of the batch", func(t *testing.T) {
		defer shiftTestTeardown(t, testDatabase)
		shiftTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		testinfra.BuildMember(711, "m1", db)

		day := types.TimestampOfDate(2021, 10, 3, 0, 0, 0, 0, time.Local)
		result, err := shift.CreateShifts(&shift.ShiftBatchCreation{Shifts: []shift.ShiftCreation{
			{Name: "no slots", Date: day, RequiredSlots: 0},
			{Name: "no date", RequiredSlots: 2},
			{Name: "valid", Date: day, RequiredSlots: 1},
		}}, context.Background())
		Expect(err).To(BeNil())
		Expect(len(result.Shifts)).To(Equal(1))
		Expect(result.Shifts[0].Name).To(Equal("valid"))
		Expect(len(result.Failures)).To(Equal(2))
		Expect(len(result.Assignments)).To(Equal(1))
	})
}

func TestQueryShifts(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should list shifts with their assignments, optionally by group", func(t *testing.T) {
		defer shiftTestTeardown(t, testDatabase)
		shiftTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		day := types.TimestampOfDate(2021, 10, 4, 0, 0, 0, 0, time.Local)
		s1 := testinfra.BuildShift(721, "groupA", day, 1, db)
		testinfra.BuildShift(722, "groupB", day, 1, db)
		testinfra.BuildAssignment(731, s1.ID, 741, db)

		details, err := shift.QueryShifts(&shift.ShiftQuery{}, context.Background())
		Expect(err).To(BeNil())
		Expect(len(details)).To(Equal(2))

		details, err = shift.QueryShifts(&shift.ShiftQuery{Group: "groupA"}, context.Background())
		Expect(err).To(BeNil())
		Expect(len(details)).To(Equal(1))
		Expect(details[0].ID).To(Equal(s1.ID))
		Expect(len(details[0].Assignments)).To(Equal(1))
		Expect(details[0].Assignments[0].MemberID).To(Equal(types.ID(741)))
	})
}

func TestDeleteShift(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should cascade to assignments and their ledger entries", func(t *testing.T) {
		defer shiftTestTeardown(t, testDatabase)
		shiftTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		day := types.TimestampOfDate(2021, 10, 5, 0, 0, 0, 0, time.Local)
		s := testinfra.BuildShift(751, "doomed", day, 1, db)
		testinfra.BuildAssignment(752, s.ID, 761, db)
		_, err := ledger.AppendEntry(ledger.Entry{MemberID: 761, Category: ledger.CategoryShiftCompleted,
			Points: 10, SourceType: ledger.SourceTypeAssignment, SourceID: 752}, db)
		Expect(err).To(BeNil())
		// an entry of an unrelated source stays
		_, err = ledger.AppendEntry(ledger.Entry{MemberID: 761, Category: ledger.CategoryTaskCompleted,
			Points: 6, SourceType: ledger.SourceTypeTask, SourceID: 771}, db)
		Expect(err).To(BeNil())

		Expect(shift.DeleteShift(s.ID, context.Background())).To(BeNil())

		count := 0
		Expect(db.Model(&domain.Shift{}).Where("id = ?", s.ID).Count(&count).Error).To(BeNil())
		Expect(count).To(BeZero())
		var assignments []domain.Assignment
		Expect(db.Where(&domain.Assignment{ShiftID: s.ID}).Find(&assignments).Error).To(BeNil())
		Expect(len(assignments)).To(BeZero())

		records, err := ledger.ListEntriesOfMember(761, db)
		Expect(err).To(BeNil())
		Expect(len(records)).To(Equal(1))
		Expect(records[0].SourceType).To(Equal(ledger.SourceTypeTask))
	})

	t.Run("should report an unknown shift id", func(t *testing.T) {
		defer shiftTestTeardown(t, testDatabase)
		shiftTestSetup(t, &testDatabase)

		Expect(shift.DeleteShift(99999, context.Background())).To(Equal(bizerror.ErrShiftNotFound))
	})
}

func TestDeleteShiftGroup(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should delete every shift of the group", func(t *testing.T) {
		defer shiftTestTeardown(t, testDatabase)
		shiftTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		day := types.TimestampOfDate(2021, 10, 6, 0, 0, 0, 0, time.Local)
		testinfra.BuildShift(781, "sale", day, 1, db)
		testinfra.BuildShift(782, "sale", day, 1, db)
		keeper := testinfra.BuildShift(783, "other", day, 1, db)

		Expect(shift.DeleteShiftGroup("sale", context.Background())).To(BeNil())

		var remaining []domain.Shift
		Expect(db.Find(&remaining).Error).To(BeNil())
		Expect(len(remaining)).To(Equal(1))
		Expect(remaining[0].ID).To(Equal(keeper.ID))
	})
}
