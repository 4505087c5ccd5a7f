package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/lshigami/vidcert/config"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination=mock/client_mock.go -package=mock_client github.com/lshigami/vidcert/internal/client TranscriptFetcher,MetadataFetcher

var ErrNoTranscript = errors.New("transcript unavailable")

// TranscriptFetcher returns the spoken text of a video as a single line.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoURL string) (string, error)
}

func NewTranscriptFetcher(cfg *config.Config) TranscriptFetcher {
	httpClient := &http.Client{Timeout: cfg.Metadata.ClientTimeout}
	if cfg.Transcript.Source == "http" {
		return NewHTTPTranscriptFetcher(httpClient, cfg.Transcript.Endpoint)
	}
	return NewYouTubeTranscriptFetcher(&youtube.Client{HTTPClient: httpClient}, cfg.Transcript.Language)
}

type youtubeAPI interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

type YouTubeTranscriptFetcher struct {
	api  youtubeAPI
	lang string
}

func NewYouTubeTranscriptFetcher(api youtubeAPI, lang string) *YouTubeTranscriptFetcher {
	return &YouTubeTranscriptFetcher{api: api, lang: lang}
}

func (f *YouTubeTranscriptFetcher) FetchTranscript(ctx context.Context, videoURL string) (string, error) {
	video, err := f.api.GetVideoContext(ctx, videoURL)
	if err != nil {
		return "", fmt.Errorf("resolve video: %w", err)
	}
	segments, err := f.api.GetTranscriptCtx(ctx, video, f.lang)
	if err != nil {
		return "", fmt.Errorf("fetch transcript for %s: %w", video.ID, err)
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoTranscript
	}
	return strings.Join(parts, " "), nil
}

// HTTPTranscriptFetcher calls an external endpoint answering GET ?url= with
// {"transcript": "..."}.
type HTTPTranscriptFetcher struct {
	client   *http.Client
	endpoint string
}

func NewHTTPTranscriptFetcher(client *http.Client, endpoint string) *HTTPTranscriptFetcher {
	return &HTTPTranscriptFetcher{client: client, endpoint: endpoint}
}

func (f *HTTPTranscriptFetcher) FetchTranscript(ctx context.Context, videoURL string) (string, error) {
	reqURL := fmt.Sprintf("%s?url=%s", f.endpoint, url.QueryEscape(videoURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", videoURL).Msg("Transcript endpoint returned non-200")
		return "", fmt.Errorf("%w: status %d", ErrNoTranscript, resp.StatusCode)
	}

	var data struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode transcript response: %w", err)
	}
	if strings.TrimSpace(data.Transcript) == "" {
		return "", ErrNoTranscript
	}
	return data.Transcript, nil
}
