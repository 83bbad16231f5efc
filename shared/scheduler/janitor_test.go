package scheduler

import (
	"testing"
	"time"

	"tubewise/shared/scratch"
)

func TestNewJanitor(t *testing.T) {
	dir, err := scratch.New(t.TempDir())
	if err != nil {
		t.Fatalf("scratch.New: %v", err)
	}

	t.Run("ValidSchedule", func(t *testing.T) {
		j, err := NewJanitor(dir, "*/15 * * * *", time.Hour)
		if err != nil {
			t.Fatalf("NewJanitor: %v", err)
		}
		j.Start()
		j.Stop()
	})

	t.Run("InvalidSchedule", func(t *testing.T) {
		if _, err := NewJanitor(dir, "not a schedule", time.Hour); err == nil {
			t.Error("NewJanitor accepted an invalid cron expression")
		}
	})
}
