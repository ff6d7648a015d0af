package schedule

import (
	"net/http"

	"fairshift/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathShiftStaffings  = "/v1/shift-staffings"
	PathFairnessReports = "/v1/fairness-reports"
)

type StaffingRequest struct {
	ShiftIDs     []types.ID `json:"shiftIds" binding:"required"`
	CooldownDays int        `json:"cooldownDays"`
}

func RegisterScheduleRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	staffings := r.Group(PathShiftStaffings, middleWares...)
	staffings.POST("", handleCreateShiftStaffing)

	reports := r.Group(PathFairnessReports, middleWares...)
	reports.GET("", handleQueryFairnessReport)
}

func handleCreateShiftStaffing(c *gin.Context) {
	req := StaffingRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	assignments, err := StaffShiftsFunc(req.ShiftIDs, req.CooldownDays, NewRandFunc(), c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, assignments)
}

func handleQueryFairnessReport(c *gin.Context) {
	report, err := FairnessReportFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, report)
}
