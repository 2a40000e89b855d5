package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lesvieux/portal/internal/shared"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"accepted with capital digit and symbol", "Abc123!!", true},
		{"accepted with symbol only", "Abcdefg!", true},
		{"rejected without capital", "abc12345", false},
		{"rejected too short", "Ab1!", false},
		{"rejected without lowercase", "ABC12345", false},
		{"rejected without number or symbol", "Abcdefgh", false},
		{"rejected empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, shared.ErrValidation))
			}
		})
	}
}
