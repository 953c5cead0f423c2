package domain

import (
	"testing"
	"time"
)

func TestValidateMedicineRequestDates(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    bool
	}{
		{"valid future window", now.Add(day), now.Add(5 * day), false},
		{"window ending today is allowed", now.Add(-5 * day), now, false},
		{"end equals start rejected", now.Add(day), now.Add(day), true},
		{"end before start rejected even in the future", now.Add(5 * day), now.Add(day), true},
		{"fully past window rejected", now.Add(-5 * day), now.Add(-day), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMedicineRequestDates(now, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMedicineRequestDates err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanTransitionMedicineRequest(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{MedicineRequestPending, MedicineRequestApproved, true},
		{MedicineRequestPending, MedicineRequestRejected, true},
		{MedicineRequestPending, MedicineRequestCompleted, false},
		{MedicineRequestApproved, MedicineRequestCompleted, true},
		{MedicineRequestApproved, MedicineRequestRejected, false},
		{MedicineRequestRejected, MedicineRequestApproved, false},
		{MedicineRequestCompleted, MedicineRequestPending, false},
	}

	for _, tt := range tests {
		if got := CanTransitionMedicineRequest(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionMedicineRequest(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
