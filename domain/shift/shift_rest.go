package shift

import (
	"net/http"

	"fairshift/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathShifts      = "/v1/shifts"
	PathShiftGroups = "/v1/shift-groups"
)

func RegisterShiftRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	shifts := r.Group(PathShifts, middleWares...)
	shifts.POST("", handleCreateShifts)
	shifts.GET("", handleQueryShifts)
	shifts.DELETE(":id", handleDeleteShift)

	groups := r.Group(PathShiftGroups, middleWares...)
	groups.DELETE(":group", handleDeleteShiftGroup)
}

func handleCreateShifts(c *gin.Context) {
	batch := ShiftBatchCreation{}
	if err := c.ShouldBindBodyWith(&batch, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CreateShiftsFunc(&batch, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func handleQueryShifts(c *gin.Context) {
	query := ShiftQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	details, err := QueryShiftsFunc(&query, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, details)
}

func handleDeleteShift(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := DeleteShiftFunc(id, c.Request.Context()); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleDeleteShiftGroup(c *gin.Context) {
	group := c.Param("group")
	if group == "" {
		panic(&bizerror.ErrBadParam{})
	}
	if err := DeleteShiftGroupFunc(group, c.Request.Context()); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
