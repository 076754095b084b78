package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftcheck/backend/domain"
)

func TestAuditActionFor(t *testing.T) {
	assert.Equal(t, domain.ActionComplete, domain.AuditActionFor(true, false))
	assert.Equal(t, domain.ActionUndo, domain.AuditActionFor(false, false))
	assert.Equal(t, domain.ActionUploadProof, domain.AuditActionFor(true, true))
	assert.Equal(t, domain.ActionUploadProof, domain.AuditActionFor(false, true),
		"proof outranks the completion flag either way")
}

func TestUserCanModify(t *testing.T) {
	tests := []struct {
		role domain.Role
		dept domain.Department
		want bool
	}{
		{domain.RoleAdmin, domain.DepartmentKitchen, true},
		{domain.RoleAdmin, domain.DepartmentService, true},
		{domain.RoleManager, domain.DepartmentKitchen, true},
		{domain.RoleManager, domain.DepartmentService, true},
		{domain.RoleKitchen, domain.DepartmentKitchen, true},
		{domain.RoleKitchen, domain.DepartmentService, false},
		{domain.RoleService, domain.DepartmentService, true},
		{domain.RoleService, domain.DepartmentKitchen, false},
	}
	for _, tt := range tests {
		u := &domain.User{Role: tt.role}
		assert.Equal(t, tt.want, u.CanModify(tt.dept), "%s on %s", tt.role, tt.dept)
	}

	var nobody *domain.User
	assert.False(t, nobody.CanModify(domain.DepartmentKitchen))
}
