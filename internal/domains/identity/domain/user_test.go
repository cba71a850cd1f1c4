package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Quản trị viên", RoleAdmin.Label())
	assert.Equal(t, "Khách hàng", RoleCustomer.Label())
	assert.Equal(t, "AUDITOR", Role("AUDITOR").Label())
	assert.True(t, RoleEmployee.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
}
