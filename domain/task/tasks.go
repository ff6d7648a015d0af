package task

import (
	"context"
	"errors"

	"fairshift/bizerror"
	"fairshift/domain"
	"fairshift/domain/ledger"
	"fairshift/idgen"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// fixed task point values
const (
	TaskCompletedPoints = 6
	TaskLatePoints      = 3
	TaskMissedPoints    = -4
)

var (
	taskIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateTaskFunc = CreateTask
	FinishTaskFunc = FinishTask
	QueryTasksFunc = QueryTasks
)

type TaskCreation struct {
	Name       string          `json:"name" binding:"required"`
	AssigneeID types.ID        `json:"assigneeId" binding:"required"`
	DueDate    types.Timestamp `json:"dueDate" binding:"required"`
}

func CreateTask(c *TaskCreation, ctx context.Context) (*domain.Task, error) {
	record := domain.Task{
		ID: idgen.NextID(taskIdWorker), Name: c.Name,
		AssigneeID: c.AssigneeID, DueDate: c.DueDate,
		CreateTime: types.CurrentTimestamp(),
	}
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func QueryTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).
		Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FinishTask mark a task done and score it: task-completed when done by the
// due date, task-late after it. The emission is a correction keyed by the
// task id, so an earlier overdue penalty from the sweep is replaced, not
// stacked on.
func FinishTask(id types.ID, ctx context.Context) (*domain.Task, error) {
	var finished domain.Task
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		task := domain.Task{}
		if err := tx.Where(&domain.Task{ID: id}).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bizerror.ErrTaskNotFound
			}
			return err
		}
		if task.Done {
			return bizerror.ErrTaskAlreadyDone
		}

		now := types.CurrentTimestamp()
		category := ledger.CategoryTaskCompleted
		points := TaskCompletedPoints
		if now.Time().After(task.DueDate.Time()) {
			category = ledger.CategoryTaskLate
			points = TaskLatePoints
		}

		if err := tx.Model(&domain.Task{}).Where("id = ?", task.ID).
			Updates(map[string]interface{}{"done": true, "done_time": now}).Error; err != nil {
			return err
		}
		if err := ledger.CorrectEntriesFunc(ledger.SourceTypeTask, task.ID, []ledger.Entry{
			{MemberID: task.AssigneeID, Category: category, Points: points},
		}, tx); err != nil {
			return err
		}

		finished = task
		finished.Done = true
		finished.DoneTime = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &finished, nil
}
