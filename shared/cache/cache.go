package cache

import (
	"sync"

	"tubewise/internal/models"
)

// Cache stores per-video artifacts for the process lifetime. Transcript
// and frames populate independently; an entry is created on the first
// successful extraction of either and removed only by Clear.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	videoTitle string
	transcript *models.Transcript
	method     string
	frames     *models.FrameSet
}

// TranscriptEntry is a cached transcript together with the metadata
// recorded when it was extracted.
type TranscriptEntry struct {
	VideoTitle string
	Transcript *models.Transcript
	Method     string
}

// Status reports which artifacts exist for a video.
type Status struct {
	HasTranscript bool   `json:"has_transcript"`
	HasFrames     bool   `json:"has_frames"`
	VideoTitle    string `json:"video_title"`
	FramesCount   int    `json:"frames_count"`
}

type Stats struct {
	TotalVideos           int `json:"total_videos"`
	VideosWithTranscripts int `json:"videos_with_transcripts"`
	VideosWithFrames      int `json:"videos_with_frames"`
}

func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

func (c *Cache) Transcript(url string) (*TranscriptEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[url]
	if !ok || e.transcript == nil {
		return nil, false
	}
	return &TranscriptEntry{
		VideoTitle: e.videoTitle,
		Transcript: e.transcript,
		Method:     e.method,
	}, true
}

func (c *Cache) StoreTranscript(url, videoTitle string, transcript *models.Transcript, method string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.upsert(url)
	e.videoTitle = videoTitle
	e.transcript = transcript
	e.method = method
}

func (c *Cache) Frames(url string) (*models.FrameSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[url]
	if !ok || e.frames == nil {
		return nil, false
	}
	return e.frames, true
}

func (c *Cache) StoreFrames(url string, frames *models.FrameSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.upsert(url)
	e.frames = frames
	if e.videoTitle == "" {
		e.videoTitle = frames.VideoTitle
	}
}

// upsert returns the entry for url, creating it if needed.
// Callers must hold the write lock.
func (c *Cache) upsert(url string) *entry {
	e, ok := c.entries[url]
	if !ok {
		e = &entry{}
		c.entries[url] = e
	}
	return e
}

func (c *Cache) Status(url string) Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[url]
	if !ok {
		return Status{VideoTitle: "Unknown"}
	}
	title := e.videoTitle
	if title == "" {
		title = "Unknown"
	}
	return Status{
		HasTranscript: e.transcript != nil,
		HasFrames:     e.frames != nil,
		VideoTitle:    title,
		FramesCount:   e.frames.Count(),
	}
}

// Clear removes everything and returns how many videos were cached.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]*entry)
	return removed
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{TotalVideos: len(c.entries)}
	for _, e := range c.entries {
		if e.transcript != nil {
			stats.VideosWithTranscripts++
		}
		if e.frames != nil {
			stats.VideosWithFrames++
		}
	}
	return stats
}
