package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourly/internal/domains/profile/model"
)

func TestProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile model.Profile
		want    string
	}{
		{
			name:    "full name wins",
			profile: model.Profile{FullName: "Alice Smith", FirstName: "Alicia", LastName: "Smythe"},
			want:    "Alice Smith",
		},
		{
			name:    "first and last name are joined",
			profile: model.Profile{FirstName: "Alice", LastName: "Smith"},
			want:    "Alice Smith",
		},
		{
			name:    "first name only",
			profile: model.Profile{FirstName: "Alice"},
			want:    "Alice",
		},
		{
			name:    "last name only",
			profile: model.Profile{LastName: "Smith"},
			want:    "Smith",
		},
		{
			name:    "nothing set falls back",
			profile: model.Profile{},
			want:    model.DisplayNameFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}
