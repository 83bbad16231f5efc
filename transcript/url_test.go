package transcript

import "testing"

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"Watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"Watch URL with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"Short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"Short link with params", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", false},
		{"Embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"No scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"Not a video URL", "https://www.youtube.com/feed/subscriptions", "", true},
		{"Unrelated site", "https://example.com/watch?v=abc", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVideoID(%q) expected error, got %q", tt.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoID(%q) unexpected error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
