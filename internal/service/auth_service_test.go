package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Field validation runs before any storage access, so these paths are
// testable with a zero-value service.
func TestRegisterFieldValidation(t *testing.T) {
	svc := NewAuthService(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"username too short", "ab", "a@b.com", "password1"},
		{"username too long", string(make([]byte, 51)), "a@b.com", "password1"},
		{"email without at sign", "student", "not-an-email", "password1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.username, tt.email, tt.password, "")
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := NewAuthService(nil, nil)
	ctx := context.Background()

	for _, password := range []string{"short1", "onlyletters", "12345678", ""} {
		_, _, err := svc.Register(ctx, "student", "a@b.com", password, "")
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q should be rejected", password)
	}
}

func TestPasswordIsStrong(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"password1", true},
		{"Abcdefg9", true},
		{"contraseña7", true},
		{"passw1", false},
		{"passwords", false},
		{"123456789", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, passwordIsStrong(tt.password), "password %q", tt.password)
	}
}
