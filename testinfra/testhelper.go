package testinfra

import (
	"fairshift/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

// BuildMember persist a member with a fixed id for tests
func BuildMember(id types.ID, name string, db *gorm.DB) *domain.Member {
	m := &domain.Member{ID: id, Name: name, CreateTime: types.CurrentTimestamp()}
	Expect(db.Save(m).Error).To(BeNil())
	return m
}

// BuildShift persist a shift with a fixed id for tests
func BuildShift(id types.ID, name string, date types.Timestamp, requiredSlots int, db *gorm.DB) *domain.Shift {
	s := &domain.Shift{ID: id, Name: name, Group: name, Date: date,
		RequiredSlots: requiredSlots, CreateTime: types.CurrentTimestamp()}
	Expect(db.Save(s).Error).To(BeNil())
	return s
}

// BuildAssignment persist an assignment in the initial ASSIGNED state
func BuildAssignment(id, shiftID, memberID types.ID, db *gorm.DB) *domain.Assignment {
	a := &domain.Assignment{ID: id, ShiftID: shiftID, MemberID: memberID,
		Status: domain.StatusAssigned, CreateTime: types.CurrentTimestamp()}
	Expect(db.Save(a).Error).To(BeNil())
	return a
}
