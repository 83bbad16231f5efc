package visual

import "testing"

func TestBuildPlan(t *testing.T) {
	tests := []struct {
		name         string
		duration     float64
		interval     float64
		maxFrames    int
		wantInterval float64
		wantFrames   int
	}{
		{"Short video keeps interval", 1000, 5, 200, 5, 200},
		{"Long video stretches interval", 2000, 5, 200, 10, 200},
		{"Tiny video gets one frame", 3, 5, 200, 5, 1},
		{"Exact fit", 100, 5, 200, 5, 20},
		{"Just over the cap", 1005, 5, 200, 5.025, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan(tt.duration, tt.interval, tt.maxFrames)
			if plan.Interval != tt.wantInterval {
				t.Errorf("Interval = %v, want %v", plan.Interval, tt.wantInterval)
			}
			if plan.TargetFrames != tt.wantFrames {
				t.Errorf("TargetFrames = %d, want %d", plan.TargetFrames, tt.wantFrames)
			}
		})
	}
}
