package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleType(t *testing.T) {
	for _, role := range AllRoleTypes() {
		got, ok := ParseRoleType(string(role))
		assert.True(t, ok, role)
		assert.Equal(t, role, got)
	}

	for _, raw := range []string{"", "vendor", "WIZARD", "PETSITTER"} {
		_, ok := ParseRoleType(raw)
		assert.False(t, ok, raw)
	}
}

func TestKycStatusTerminal(t *testing.T) {
	assert.False(t, KycPending.Terminal())
	assert.True(t, KycApproved.Terminal())
	assert.True(t, KycRejected.Terminal())
}
