// Package visual samples timestamped JPEG frames from YouTube videos
// for multimodal analysis: plan how many frames a video gets, download
// it at bounded quality, then decode and sample sequentially.
package visual

// Plan is the (interval, count) pair governing frame sampling for one
// video.
type Plan struct {
	Interval     float64
	TargetFrames int
}

// BuildPlan computes the sampling plan for a video. Short videos keep
// the configured interval; long videos get their interval stretched so
// the frame count never exceeds maxFrames.
func BuildPlan(duration, interval float64, maxFrames int) Plan {
	ideal := int(duration / interval)

	if ideal <= maxFrames {
		if ideal < 1 {
			ideal = 1
		}
		return Plan{Interval: interval, TargetFrames: ideal}
	}

	return Plan{
		Interval:     duration / float64(maxFrames),
		TargetFrames: maxFrames,
	}
}
