package task_test

import (
	"context"
	"testing"
	"time"

	"fairshift/bizerror"
	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/domain/task"
	"fairshift/persistence"
	"fairshift/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func taskTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartTestDatabase("fairshift")
	*testDatabase = db
	Expect(db.DS.GormDB(nil).AutoMigrate(&domain.Task{}, &ledger.EntryRecord{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
}

func taskTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	testinfra.StopTestDatabase(testDatabase)
}

func TestCreateTask(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should persist an undone task", func(t *testing.T) {
		defer taskTestTeardown(t, testDatabase)
		taskTestSetup(t, &testDatabase)

		due := types.TimestampOfDate(2022, 1, 10, 0, 0, 0, 0, time.Local)
		record, err := task.CreateTask(&task.TaskCreation{Name: "hang posters", AssigneeID: 801, DueDate: due}, context.Background())
		Expect(err).To(BeNil())
		Expect(record.ID).ToNot(BeZero())
		Expect(record.Done).To(BeFalse())

		tasks, err := task.QueryTasks(context.Background())
		Expect(err).To(BeNil())
		Expect(len(tasks)).To(Equal(1))
		Expect(tasks[0].Name).To(Equal("hang posters"))
	})
}

func TestFinishTask(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should credit full points when finished before the due date", func(t *testing.T) {
		defer taskTestTeardown(t, testDatabase)
		taskTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		due := types.Timestamp(time.Now().AddDate(0, 0, 7))
		record := domain.Task{ID: 811, Name: "on time", AssigneeID: 821, DueDate: due, CreateTime: types.CurrentTimestamp()}
		Expect(db.Save(&record).Error).To(BeNil())

		finished, err := task.FinishTask(811, context.Background())
		Expect(err).To(BeNil())
		Expect(finished.Done).To(BeTrue())

		records, err := ledger.ListEntriesOfMember(821, db)
		Expect(err).To(BeNil())
		Expect(len(records)).To(Equal(1))
		Expect(records[0].Category).To(Equal(ledger.CategoryTaskCompleted))
		Expect(records[0].Points).To(Equal(task.TaskCompletedPoints))
		Expect(records[0].SourceID).To(Equal(types.ID(811)))
	})

	t.Run("should credit reduced points when finished after the due date", func(t *testing.T) {
		defer taskTestTeardown(t, testDatabase)
		taskTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		due := types.Timestamp(time.Now().AddDate(0, 0, -2))
		record := domain.Task{ID: 812, Name: "late", AssigneeID: 822, DueDate: due, CreateTime: types.CurrentTimestamp()}
		Expect(db.Save(&record).Error).To(BeNil())

		_, err := task.FinishTask(812, context.Background())
		Expect(err).To(BeNil())

		records, err := ledger.ListEntriesOfMember(822, db)
		Expect(err).To(BeNil())
		Expect(len(records)).To(Equal(1))
		Expect(records[0].Category).To(Equal(ledger.CategoryTaskLate))
		Expect(records[0].Points).To(Equal(task.TaskLatePoints))
	})

	t.Run("should reject finishing twice or finishing an unknown task", func(t *testing.T) {
		defer taskTestTeardown(t, testDatabase)
		taskTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		due := types.Timestamp(time.Now().AddDate(0, 0, 7))
		record := domain.Task{ID: 813, Name: "once", AssigneeID: 823, DueDate: due, CreateTime: types.CurrentTimestamp()}
		Expect(db.Save(&record).Error).To(BeNil())

		_, err := task.FinishTask(813, context.Background())
		Expect(err).To(BeNil())
		_, err = task.FinishTask(813, context.Background())
		Expect(err).To(Equal(bizerror.ErrTaskAlreadyDone))

		_, err = task.FinishTask(99999, context.Background())
		Expect(err).To(Equal(bizerror.ErrTaskNotFound))
	})
}
