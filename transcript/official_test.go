package transcript

import (
	"context"
	"errors"
	"testing"
)

func TestBestEnglishTrack(t *testing.T) {
	manual := CaptionTrack{ID: "m", LanguageCode: "en", LanguageName: "English", IsGenerated: false}
	manualGB := CaptionTrack{ID: "gb", LanguageCode: "en-GB", LanguageName: "English (UK)", IsGenerated: false}
	generated := CaptionTrack{ID: "g", LanguageCode: "en", LanguageName: "English (auto-generated)", IsGenerated: true}
	namedOnly := CaptionTrack{ID: "n", LanguageCode: "fil", LanguageName: "English from Filipino", IsGenerated: false}
	french := CaptionTrack{ID: "f", LanguageCode: "fr", LanguageName: "French", IsGenerated: false}

	tests := []struct {
		name   string
		tracks []CaptionTrack
		wantID string
	}{
		{"No tracks", nil, ""},
		{"No English at all", []CaptionTrack{french}, ""},
		{"Manual wins over generated", []CaptionTrack{generated, manual}, "m"},
		{"Regional code counts as English", []CaptionTrack{french, manualGB}, "gb"},
		{"Generated when no manual", []CaptionTrack{french, generated}, "g"},
		{"Generated outranks name match", []CaptionTrack{namedOnly, generated}, "g"},
		{"Name match as last resort", []CaptionTrack{french, namedOnly}, "n"},
		{"First manual kept", []CaptionTrack{manual, manualGB}, "m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestEnglishTrack(tt.tracks)
			if tt.wantID == "" {
				if got != nil {
					t.Fatalf("BestEnglishTrack() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("BestEnglishTrack() = nil, want track %s", tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("BestEnglishTrack() picked %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

type fakeCaptionService struct {
	tracks    []CaptionTrack
	cues      []Cue
	listErr   error
	fetchErr  error
	fetchedID string
}

func (f *fakeCaptionService) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	return f.tracks, f.listErr
}

func (f *fakeCaptionService) FetchCues(ctx context.Context, track CaptionTrack) ([]Cue, error) {
	f.fetchedID = track.ID
	return f.cues, f.fetchErr
}

func TestOfficialSourceAttempt(t *testing.T) {
	ctx := context.Background()
	url := "https://www.youtube.com/watch?v=abc123xyz00"

	t.Run("NilService", func(t *testing.T) {
		source := NewOfficialSource(nil)
		if got := source.Attempt(ctx, url); got != nil {
			t.Errorf("Attempt with nil service = %v, want nil", got)
		}
	})

	t.Run("UnparseableURL", func(t *testing.T) {
		source := NewOfficialSource(&fakeCaptionService{})
		if got := source.Attempt(ctx, "https://example.com/nope"); got != nil {
			t.Errorf("Attempt with bad URL = %v, want nil", got)
		}
	})

	t.Run("ListingFails", func(t *testing.T) {
		source := NewOfficialSource(&fakeCaptionService{listErr: errors.New("quota exceeded")})
		if got := source.Attempt(ctx, url); got != nil {
			t.Errorf("Attempt with listing error = %v, want nil", got)
		}
	})

	t.Run("NoEnglishTrack", func(t *testing.T) {
		service := &fakeCaptionService{tracks: []CaptionTrack{
			{ID: "f", LanguageCode: "fr", LanguageName: "French"},
		}}
		if got := NewOfficialSource(service).Attempt(ctx, url); got != nil {
			t.Errorf("Attempt without English track = %v, want nil", got)
		}
	})

	t.Run("FetchFails", func(t *testing.T) {
		service := &fakeCaptionService{
			tracks:   []CaptionTrack{{ID: "m", LanguageCode: "en"}},
			fetchErr: errors.New("download forbidden"),
		}
		if got := NewOfficialSource(service).Attempt(ctx, url); got != nil {
			t.Errorf("Attempt with fetch error = %v, want nil", got)
		}
	})

	t.Run("EmptyCues", func(t *testing.T) {
		service := &fakeCaptionService{
			tracks: []CaptionTrack{{ID: "m", LanguageCode: "en"}},
			cues:   []Cue{{Text: "   ", Start: 0, Duration: 1}},
		}
		if got := NewOfficialSource(service).Attempt(ctx, url); got != nil {
			t.Errorf("Attempt with blank cues = %v, want nil", got)
		}
	})

	t.Run("StructuredResult", func(t *testing.T) {
		service := &fakeCaptionService{
			tracks: []CaptionTrack{
				{ID: "g", LanguageCode: "en", IsGenerated: true},
				{ID: "m", LanguageCode: "en", IsGenerated: false},
			},
			cues: []Cue{
				{Text: " hello ", Start: 0, Duration: 1.5},
				{Text: "world", Start: 1.5, Duration: 2},
			},
		}
		got := NewOfficialSource(service).Attempt(ctx, url)
		if got == nil {
			t.Fatal("Attempt = nil, want structured transcript")
		}
		if service.fetchedID != "m" {
			t.Errorf("fetched track %s, want the manual track m", service.fetchedID)
		}
		if !got.HasTimestamps() {
			t.Fatal("result has no timestamps")
		}
		segments := got.Structured.Segments
		if len(segments) != 2 {
			t.Fatalf("got %d segments, want 2", len(segments))
		}
		if segments[0].Text != "hello" {
			t.Errorf("first segment text = %q, cue not trimmed", segments[0].Text)
		}
		if segments[1].Start != 1.5 || segments[1].End != 3.5 {
			t.Errorf("second segment timing = (%v, %v), want (1.5, 3.5)", segments[1].Start, segments[1].End)
		}
	})
}
