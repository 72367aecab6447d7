package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{
			name:     "valid username - lowercase",
			username: "alice",
			wantErr:  false,
		},
		{
			name:     "valid username - mixed with dot and dash",
			username: "alice.dev-01",
			wantErr:  false,
		},
		{
			name:     "single character allowed",
			username: "a",
			wantErr:  false,
		},
		{
			name:     "empty username",
			username: "",
			wantErr:  true,
		},
		{
			name:     "too long",
			username: strings.Repeat("a", 65),
			wantErr:  true,
		},
		{
			name:     "invalid characters",
			username: "alice!",
			wantErr:  true,
		},
		{
			name:     "spaces not allowed",
			username: "alice smith",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("b"))
	assert.NoError(t, ValidatePassword("correct-horse"))
	assert.Error(t, ValidatePassword(""))
}
