package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type deeplClient struct {
	baseURL string
	client  *http.Client
}

// NewDeepL returns the DeepL v2 adapter. DeepL expects upper-case target codes.
func NewDeepL(baseURL string, client *http.Client) Provider {
	return &deeplClient{baseURL: baseURL, client: client}
}

func (c *deeplClient) ID() string { return DeepL }

func (c *deeplClient) Translate(ctx context.Context, text, targetLang, credential string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", strings.ToUpper(targetLang))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", transportError(ctx, DeepL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := readResponse(DeepL, resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &Error{Provider: DeepL, Message: fmt.Sprintf("decode: %v", err)}
	}
	if len(result.Translations) == 0 {
		return "", &Error{Provider: DeepL, Message: "no translations returned"}
	}
	return result.Translations[0].Text, nil
}
