package http

import (
	"strings"

	"github.com/vadimbarashkov/shortlink/internal/entity"
)

// urlRequest represents the structure for a request to shorten a URL.
type urlRequest struct {
	TargetURL string `json:"target_url" validate:"required,http_url"`
}

// urlInfoResponse represents a shortened URL together with its public and administrative links.
type urlInfoResponse struct {
	TargetURL string `json:"target_url"`
	Key       string `json:"key"`
	SecretKey string `json:"secret_key"`
	IsActive  bool   `json:"is_active"`
	Clicks    int64  `json:"clicks"`
	URL       string `json:"url"`
	AdminURL  string `json:"admin_url"`
}

// toURLInfoResponse converts an entity.URL to a urlInfoResponse, rendering links against baseURL.
func toURLInfoResponse(baseURL string, url *entity.URL) urlInfoResponse {
	base := strings.TrimSuffix(baseURL, "/")

	return urlInfoResponse{
		TargetURL: url.TargetURL,
		Key:       url.Key,
		SecretKey: url.SecretKey,
		IsActive:  url.IsActive(),
		Clicks:    url.Clicks,
		URL:       base + "/" + url.Key,
		AdminURL:  base + "/admin/" + url.SecretKey,
	}
}
