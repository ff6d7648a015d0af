package sweep

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	PathShiftCreditSweeps = "/v1/shift-credit-sweeps"
	PathTaskPenaltySweeps = "/v1/task-penalty-sweeps"

	// sweeps are triggered by page loads, the limiters keep a busy portal
	// from rescanning the tables on every request
	creditSweepLimiter  = rate.NewLimiter(rate.Every(time.Minute), 1)
	penaltySweepLimiter = rate.NewLimiter(rate.Every(time.Minute), 1)
)

type SweepResult struct {
	Emitted int  `json:"emitted"`
	Skipped bool `json:"skipped"`
}

func RegisterSweepRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	creditSweeps := r.Group(PathShiftCreditSweeps, middleWares...)
	creditSweeps.POST("", handleCreateShiftCreditSweep)

	penaltySweeps := r.Group(PathTaskPenaltySweeps, middleWares...)
	penaltySweeps.POST("", handleCreateTaskPenaltySweep)
}

func handleCreateShiftCreditSweep(c *gin.Context) {
	if !creditSweepLimiter.Allow() {
		c.JSON(http.StatusOK, &SweepResult{Skipped: true})
		return
	}
	credited, err := CreditPastShiftsFunc(time.Now(), c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &SweepResult{Emitted: credited})
}

func handleCreateTaskPenaltySweep(c *gin.Context) {
	if !penaltySweepLimiter.Allow() {
		c.JSON(http.StatusOK, &SweepResult{Skipped: true})
		return
	}
	penalized, err := PenalizeOverdueTasksFunc(time.Now(), c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &SweepResult{Emitted: penalized})
}
