package attendance

import (
	"net/http"

	"fairshift/bizerror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathAssignmentAttendances = "/v1/assignment-attendances"
)

func RegisterAttendanceRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathAssignmentAttendances, middleWares...)
	g.PUT("", handleUpdateAttendance)
	g.PUT("batch", handleUpdateAttendances)
}

func handleUpdateAttendance(c *gin.Context) {
	update := AttendanceUpdate{}
	if err := c.ShouldBindBodyWith(&update, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	assignment, err := UpdateAttendanceFunc(&update, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, assignment)
}

func handleUpdateAttendances(c *gin.Context) {
	updates := []AttendanceUpdate{}
	if err := c.ShouldBindBodyWith(&updates, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	failures := UpdateAttendancesFunc(updates, c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"failures": failures})
}
