package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lshigami/vidcert/config"
)

type VideoMetadata struct {
	Title       string
	ChannelName string
}

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoURL string) (VideoMetadata, error)
}

type NoEmbedAPI struct {
	client   *http.Client
	endpoint string
}

func NewNoEmbedAPI(cfg *config.Config) *NoEmbedAPI {
	return &NoEmbedAPI{
		client:   &http.Client{Timeout: cfg.Metadata.ClientTimeout},
		endpoint: cfg.Metadata.Endpoint,
	}
}

func NewMetadataFetcher(cfg *config.Config) MetadataFetcher {
	return NewNoEmbedAPI(cfg)
}

func (n *NoEmbedAPI) FetchMetadata(ctx context.Context, videoURL string) (VideoMetadata, error) {
	reqURL := fmt.Sprintf("%s?url=%s", n.endpoint, url.QueryEscape(videoURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return VideoMetadata{}, err
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return VideoMetadata{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VideoMetadata{}, fmt.Errorf("noembed returned status %d", resp.StatusCode)
	}

	var data struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
		Error      string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return VideoMetadata{}, err
	}
	// noembed reports unknown URLs with 200 and an error field.
	if data.Error != "" {
		return VideoMetadata{}, fmt.Errorf("noembed: %s", data.Error)
	}
	return VideoMetadata{Title: data.Title, ChannelName: data.AuthorName}, nil
}
