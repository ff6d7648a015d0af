package bizerror

import (
	"errors"
	"net/http"
)

var ErrUnknownStatus = errors.New("unknown attendance status")
var ErrAssignmentNotFound = errors.New("assignment not found")
var ErrShiftNotFound = errors.New("shift not found")
var ErrMemberNotFound = errors.New("member not found")
var ErrTaskNotFound = errors.New("task not found")
var ErrTaskAlreadyDone = errors.New("task already done")
var ErrReplacementIsAssignee = errors.New("replacement member equals assignee")

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}
