// Package youtube implements the official caption listing/fetch
// capability on top of the YouTube Data API v3. Caption downloads need
// an OAuth token, obtained through the device authorization flow and
// persisted across restarts.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tubewise/shared/config"
	"tubewise/shared/logging"
	"tubewise/transcript"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type Client struct {
	service *youtube.Service
}

func NewClient(cfg *config.CaptionsConfig) (*Client, error) {
	ctx := context.Background()

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.force-ssl"},
		Endpoint:     google.Endpoint,
	}

	token, err := getToken(oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	// Token source that auto-refreshes and saves the refreshed token.
	tokenSource := &tokenSaver{
		config:    oauthConfig,
		token:     token,
		tokenFile: cfg.TokenFile,
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)

	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// ListTracks returns every caption track attached to a video.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]transcript.CaptionTrack, error) {
	resp, err := c.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list caption tracks for %s: %w", videoID, err)
	}

	tracks := make([]transcript.CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		tracks = append(tracks, transcript.CaptionTrack{
			ID:           item.Id,
			LanguageCode: item.Snippet.Language,
			LanguageName: item.Snippet.Name,
			IsGenerated:  item.Snippet.TrackKind == "asr",
		})
	}
	return tracks, nil
}

// FetchCues downloads a caption track in SRT form and parses it into
// cues with start and duration.
func (c *Client) FetchCues(ctx context.Context, track transcript.CaptionTrack) ([]transcript.Cue, error) {
	resp, err := c.service.Captions.Download(track.ID).Tfmt("srt").Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download caption track %s: %w", track.ID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read caption track %s: %w", track.ID, err)
	}

	cues := parseSRT(string(body))
	if len(cues) == 0 {
		return nil, fmt.Errorf("caption track %s contained no cues", track.ID)
	}
	return cues, nil
}

// tokenSaver wraps an oauth2.TokenSource to automatically persist
// refreshed tokens so they survive application restarts.
type tokenSaver struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	mu        sync.Mutex // Protects concurrent token refresh operations
}

func (ts *tokenSaver) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	tokenSource := ts.config.TokenSource(context.Background(), ts.token)

	newToken, err := tokenSource.Token()
	if err != nil {
		return nil, err
	}

	if newToken.AccessToken != ts.token.AccessToken {
		logging.L().Info("OAuth token refreshed, saving to file")
		ts.token = newToken
		if err := saveToken(ts.tokenFile, newToken); err != nil {
			logging.L().WithError(err).Warn("failed to save refreshed token")
		}
	}

	return newToken, nil
}

// getToken loads a token from disk or initiates the device flow.
// A stored token with a refresh token is kept even if expired, since
// the tokenSaver can refresh it.
func getToken(oauthConfig *oauth2.Config, tokenFile string) (*oauth2.Token, error) {
	tok, err := tokenFromFile(tokenFile)
	if err == nil {
		if tok.RefreshToken != "" {
			logging.L().WithField("expires", tok.Expiry).Info("loaded OAuth token from file")
			return tok, nil
		}
		if tok.Valid() {
			return tok, nil
		}
	}

	logging.L().Info("requesting new OAuth token via device flow")
	tok, err = getTokenWithDeviceFlow(oauthConfig)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			logging.L().WithField("status", retrieveErr.Response.Status).Error("device authorization response failed")
		}
		return nil, fmt.Errorf("device authorization failed: %w", err)
	}

	if err := saveToken(tokenFile, tok); err != nil {
		logging.L().WithError(err).Warn("failed to save token")
	}
	return tok, nil
}

func getTokenWithDeviceFlow(oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	ctx := context.Background()

	resp, err := oauthConfig.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 80))
	fmt.Printf("YOUTUBE DEVICE AUTHORIZATION REQUIRED\n")
	fmt.Printf("%s\n", strings.Repeat("=", 80))
	fmt.Printf("1. Visit %s in your browser (any device works).\n", resp.VerificationURI)
	fmt.Printf("2. Enter this code when prompted: %s\n\n", resp.UserCode)
	fmt.Printf("Waiting for authorization to complete... (Ctrl+C to cancel)\n")
	fmt.Printf("%s\n", strings.Repeat("-", 80))

	tok, err := oauthConfig.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}

	fmt.Printf("\nAuthorization successful. Token saved.\n\n")

	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode oauth token: %w", err)
	}
	return nil
}
