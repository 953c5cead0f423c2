package domain

import (
	"testing"
	"time"
)

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"nested start overlaps", at(0), at(30), at(15), at(45), true},
		{"identical slots overlap", at(0), at(30), at(0), at(30), true},
		{"containment overlaps", at(0), at(60), at(15), at(30), true},
		{"back to back does not overlap", at(0), at(30), at(30), at(60), false},
		{"back to back reversed does not overlap", at(30), at(60), at(0), at(30), false},
		{"disjoint does not overlap", at(0), at(30), at(45), at(60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("IntervalsOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateConsultationTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		scheduled time.Time
		duration  int
		wantErr   bool
	}{
		{"future with valid duration", now.Add(time.Hour), 30, false},
		{"exactly now is rejected", now, 30, true},
		{"past is rejected", now.Add(-time.Hour), 30, true},
		{"minimum duration accepted", now.Add(time.Hour), ConsultationMinMinutes, false},
		{"maximum duration accepted", now.Add(time.Hour), ConsultationMaxMinutes, false},
		{"below minimum rejected", now.Add(time.Hour), ConsultationMinMinutes - 1, true},
		{"above maximum rejected", now.Add(time.Hour), ConsultationMaxMinutes + 1, true},
		{"zero duration rejected", now.Add(time.Hour), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConsultationTime(now, tt.scheduled, tt.duration)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConsultationTime err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && KindOf(err) != KindValidation {
				t.Errorf("error kind = %v, want KindValidation", KindOf(err))
			}
		})
	}
}

func TestValidateConsultationTimeDateCheckedFirst(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	// A past date with an invalid duration must fail on the date.
	err := ValidateConsultationTime(now, now.Add(-time.Hour), 5)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "scheduled date must be in the future" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCanTransitionConsultation(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{ConsultationScheduled, ConsultationCompleted, true},
		{ConsultationScheduled, ConsultationCancelled, true},
		{ConsultationCompleted, ConsultationCancelled, false},
		{ConsultationCancelled, ConsultationScheduled, false},
		{ConsultationCompleted, ConsultationScheduled, false},
	}

	for _, tt := range tests {
		if got := CanTransitionConsultation(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionConsultation(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
