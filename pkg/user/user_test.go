package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationCode_Usable(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	tests := []struct {
		name string
		code RegistrationCode
		want bool
	}{
		{"unlimited", RegistrationCode{Status: StatusActive, UsedCount: 100, MaxUses: UnlimitedUses}, true},
		{"uses left", RegistrationCode{Status: StatusActive, UsedCount: 1, MaxUses: 2}, true},
		{"used up", RegistrationCode{Status: StatusActive, UsedCount: 2, MaxUses: 2}, false},
		{"inactive", RegistrationCode{Status: StatusInactive, MaxUses: UnlimitedUses}, false},
		{"not yet expired", RegistrationCode{Status: StatusActive, MaxUses: UnlimitedUses, ExpiresAt: &later}, true},
		{"expires now", RegistrationCode{Status: StatusActive, MaxUses: UnlimitedUses, ExpiresAt: &now}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Usable(now))
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WELCOME-25", NormalizeCode("  welcome-25\n"))
	assert.Equal(t, "", NormalizeCode("   "))
}
