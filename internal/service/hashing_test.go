package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	password := "Secr3t!pass"
	pepper := "test-pepper"

	hashed, err := hashPassword(password, pepper)
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)

	assert.True(t, checkPasswordHash(password, hashed, pepper))
	assert.False(t, checkPasswordHash("wrong", hashed, pepper))
	assert.False(t, checkPasswordHash(password, hashed, "another-pepper"))
	assert.False(t, checkPasswordHash(password, "not-a-bcrypt-hash", pepper))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Abc123@!", true},
		{"Abcdefg_", true},
		{"Ab@1", false},
		{"abcdefg@1", false},
		{"ABCDEFG@1", false},
		{"Abcdefg12", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.valid, validatePassword(tt.password))
		})
	}
}

func TestEmailPattern(t *testing.T) {
	assert.True(t, emailPattern.MatchString("user@example.com"))
	assert.True(t, emailPattern.MatchString("first.last-1@mail.example.org"))
	assert.False(t, emailPattern.MatchString("user@localhost"))
	assert.False(t, emailPattern.MatchString("no-at-sign.com"))
	assert.False(t, emailPattern.MatchString("a b@example.com"))
}

func TestAdminUserIDIsStable(t *testing.T) {
	assert.Equal(t, AdminUserID("Admin@Example.com"), AdminUserID("admin@example.com"))
	assert.NotEqual(t, AdminUserID("a@example.com"), AdminUserID("b@example.com"))
}
