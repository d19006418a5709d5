package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type googleClient struct {
	baseURL string
	client  *http.Client
}

// NewGoogle returns the Google Cloud Translation v2 adapter.
func NewGoogle(baseURL string, client *http.Client) Provider {
	return &googleClient{baseURL: baseURL, client: client}
}

func (c *googleClient) ID() string { return Google }

func (c *googleClient) Translate(ctx context.Context, text, targetLang, credential string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":      text,
		"target": strings.ToLower(targetLang),
		"format": "text",
	})
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	endpoint := c.baseURL + "?key=" + url.QueryEscape(credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", transportError(ctx, Google, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := readResponse(Google, resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &Error{Provider: Google, Message: fmt.Sprintf("decode: %v", err)}
	}
	if len(result.Data.Translations) == 0 {
		return "", &Error{Provider: Google, Message: "no translations returned"}
	}
	return result.Data.Translations[0].TranslatedText, nil
}
