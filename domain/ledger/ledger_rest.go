package ledger

import (
	"net/http"

	"fairshift/bizerror"
	"fairshift/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathScores                = "/v1/scores"
	PathLedgerEntries         = "/v1/ledger-entries"
	PathMaterialContributions = "/v1/material-contributions"
	PathManualAdjustments     = "/v1/manual-adjustments"
)

func RegisterLedgerRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	scores := r.Group(PathScores, middleWares...)
	scores.GET(":memberId", handleQueryScoreBreakdown)

	entries := r.Group(PathLedgerEntries, middleWares...)
	entries.GET("", handleQueryLedgerEntries)

	materials := r.Group(PathMaterialContributions, middleWares...)
	materials.POST("", handleCreateMaterialContribution)

	adjustments := r.Group(PathManualAdjustments, middleWares...)
	adjustments.POST("", handleCreateManualAdjustment)
}

func handleQueryScoreBreakdown(c *gin.Context) {
	memberID, err := types.ParseID(c.Param("memberId"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	breakdown, err := BreakdownOf(memberID, persistence.ActiveDataSourceManager.GormDB(c.Request.Context()))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, breakdown)
}

func handleQueryLedgerEntries(c *gin.Context) {
	memberID, err := types.ParseID(c.Query("memberId"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := ListEntriesOfMember(memberID, persistence.ActiveDataSourceManager.GormDB(c.Request.Context()))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleCreateMaterialContribution(c *gin.Context) {
	creation := MaterialContributionCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := RecordMaterialContributionFunc(&creation, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleCreateManualAdjustment(c *gin.Context) {
	creation := ManualAdjustmentCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := RecordManualAdjustmentFunc(&creation, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}
