package treatment

import "testing"

func TestBadgeForKnownStatuses(t *testing.T) {
	tests := []struct {
		status string
		want   Badge
	}{
		{StatusCompleted, badgeSuccess},
		{StatusCancelled, badgeError},
		{StatusInProgress, badgeProcessing},
		{StepCurrent, badgeProcessing},
		{StepPending, badgeNeutral},
		{"no-show", badgeWarning},
	}
	for _, tt := range tests {
		if got := BadgeFor(tt.status); got != tt.want {
			t.Errorf("BadgeFor(%q) = %+v, want %+v", tt.status, got, tt.want)
		}
	}
}

func TestBadgeForIsTotal(t *testing.T) {
	for _, status := range []string{"mystery-status", "", "COMPLETED"} {
		got := BadgeFor(status)
		if got != badgeNeutral {
			t.Errorf("BadgeFor(%q) = %+v, want the neutral style", status, got)
		}
		if got.Background == "" || got.Text == "" || got.Dot == "" {
			t.Errorf("BadgeFor(%q) returned an incomplete style triple %+v", status, got)
		}
	}
}
