package domain

import (
	"testing"
	"time"
)

func TestUsernameBase(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		dob      time.Time
		want     string
	}{
		{
			name:     "three word name",
			fullName: "Nguyen Phuc Tan",
			dob:      time.Date(2001, 5, 25, 0, 0, 0, 0, time.UTC),
			want:     "tannp250501",
		},
		{
			name:     "two word name",
			fullName: "Tran Linh",
			dob:      time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC),
			want:     "linht011210",
		},
		{
			name:     "single word name",
			fullName: "Anh",
			dob:      time.Date(2009, 1, 2, 0, 0, 0, 0, time.UTC),
			want:     "anh020109",
		},
		{
			name:     "extra whitespace",
			fullName: "  Le   Thi  Hoa ",
			dob:      time.Date(2008, 7, 15, 0, 0, 0, 0, time.UTC),
			want:     "hoalt150708",
		},
		{
			name:     "empty name",
			fullName: "   ",
			dob:      time.Date(2008, 7, 15, 0, 0, 0, 0, time.UTC),
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsernameBase(tt.fullName, tt.dob); got != tt.want {
				t.Errorf("UsernameBase(%q) = %q, want %q", tt.fullName, got, tt.want)
			}
		})
	}
}
