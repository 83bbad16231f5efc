package models

// Frame is one sampled still image from a video, JPEG-encoded. Data is
// base64 on the wire via the standard []byte encoding.
type Frame struct {
	Index     int     `json:"frame_number"`
	Timestamp float64 `json:"timestamp"`
	Data      []byte  `json:"data"`
}

// FrameSet holds the sampled frames for one video together with the
// parameters that produced them.
type FrameSet struct {
	VideoTitle string  `json:"video_title"`
	Duration   float64 `json:"video_duration"`
	Interval   float64 `json:"extraction_interval"`
	Frames     []Frame `json:"frames"`
}

func (fs *FrameSet) Count() int {
	if fs == nil {
		return 0
	}
	return len(fs.Frames)
}
