package member

import (
	"net/http"

	"fairshift/bizerror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathMembers = "/v1/members"
)

func RegisterMemberRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathMembers, middleWares...)
	g.POST("", handleCreateMember)
	g.GET("", handleQueryMembers)
}

func handleCreateMember(c *gin.Context) {
	creation := MemberCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateMemberFunc(&creation, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleQueryMembers(c *gin.Context) {
	members, err := QueryMembersFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, members)
}
