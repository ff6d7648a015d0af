package member_test

import (
	"context"
	"testing"

	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/domain/member"
	"fairshift/persistence"
	"fairshift/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func memberTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartTestDatabase("fairshift")
	*testDatabase = db
	Expect(db.DS.GormDB(nil).AutoMigrate(
		&domain.Member{}, &domain.CommitteeMember{}, &ledger.EntryRecord{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
}

func memberTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	testinfra.StopTestDatabase(testDatabase)
}

func TestCreateMember(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should persist a member with a generated id", func(t *testing.T) {
		defer memberTestTeardown(t, testDatabase)
		memberTestSetup(t, &testDatabase)

		record, err := member.CreateMember(&member.MemberCreation{Name: "ada", Nickname: "Ada"}, context.Background())
		Expect(err).To(BeNil())
		Expect(record.ID).ToNot(BeZero())
		Expect(record.Name).To(Equal("ada"))
	})
}

func TestQueryMembers(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should list members with live scores and committees", func(t *testing.T) {
		defer memberTestTeardown(t, testDatabase)
		memberTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		testinfra.BuildMember(901, "ada", db)
		testinfra.BuildMember(902, "grace", db)
		Expect(db.Save(&domain.CommitteeMember{MemberID: 901, Committee: "treasury"}).Error).To(BeNil())
		Expect(db.Save(&domain.CommitteeMember{MemberID: 901, Committee: "events"}).Error).To(BeNil())

		_, err := ledger.AppendEntry(ledger.Entry{MemberID: 901, Category: ledger.CategoryShiftCompleted,
			Points: 10, SourceType: ledger.SourceTypeAssignment, SourceID: 911}, db)
		Expect(err).To(BeNil())
		_, err = ledger.AppendEntry(ledger.Entry{MemberID: 901, Category: ledger.CategoryTaskMissed,
			Points: -4, SourceType: ledger.SourceTypeTask, SourceID: 912}, db)
		Expect(err).To(BeNil())

		listed, err := member.QueryMembers(context.Background())
		Expect(err).To(BeNil())
		Expect(len(listed)).To(Equal(2))
		Expect(listed[0].ID).To(Equal(types.ID(901)))
		Expect(listed[0].Score).To(Equal(6))
		Expect(len(listed[0].Committees)).To(Equal(2))
		Expect(listed[1].ID).To(Equal(types.ID(902)))
		Expect(listed[1].Score).To(BeZero())
		Expect(listed[1].Committees).To(BeEmpty())
	})
}
