package task

import (
	"net/http"

	"fairshift/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathTasks = "/v1/tasks"
)

func RegisterTaskRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTasks, middleWares...)
	g.POST("", handleCreateTask)
	g.GET("", handleQueryTasks)
	g.PUT(":id/finish", handleFinishTask)
}

func handleCreateTask(c *gin.Context) {
	creation := TaskCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateTaskFunc(&creation, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleQueryTasks(c *gin.Context) {
	tasks, err := QueryTasksFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, tasks)
}

func handleFinishTask(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	finished, err := FinishTaskFunc(id, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, finished)
}
