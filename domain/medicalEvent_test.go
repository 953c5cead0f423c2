package domain

import "testing"

func TestCanTransitionEvent(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{EventStatusOpen, EventStatusInProgress, true},
		{EventStatusOpen, EventStatusResolved, true},
		{EventStatusOpen, EventStatusReferred, true},
		{EventStatusInProgress, EventStatusResolved, true},
		{EventStatusInProgress, EventStatusReferred, true},
		{EventStatusInProgress, EventStatusOpen, false},
		{EventStatusResolved, EventStatusOpen, false},
		{EventStatusResolved, EventStatusInProgress, false},
		{EventStatusReferred, EventStatusResolved, false},
		{EventStatusOpen, EventStatusOpen, false},
	}

	for _, tt := range tests {
		if got := CanTransitionEvent(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionEvent(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
