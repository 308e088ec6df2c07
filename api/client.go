package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reade_cli/logger"
	"reade_cli/parse"
)

const (
	DefaultBaseURL = "https://readwise.io/api"
	DefaultTimeout = 10 * time.Second

	highlightsPath = "/v2/highlights/"
	savePath       = "/v3/save/"
	listPath       = "/v3/list/"

	// Fixed source metadata attached to created highlights.
	sourceType        = "Reade"
	highlightImageURL = "https://raw.githubusercontent.com/quinncomendant/Reade.lbaction/refs/heads/main/docs/Reade-icon.png"
)

// Client handles Readwise API interactions. Every call is a single
// synchronous request with the configured timeout; there is no retry and no
// concurrent in-flight request.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a new API client
func NewClient(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent: "Reade-CLI/1.0",
	}
}

// SetTimeout configures the HTTP client timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// HighlightCreate posts a new highlight and returns its highlights URL.
func (c *Client) HighlightCreate(text, title string) (string, *CallError) {
	body := HighlightRequest{
		Highlights: []HighlightPayload{
			{
				Text:       text,
				Title:      title,
				ImageURL:   highlightImageURL,
				SourceType: sourceType,
			},
		},
	}

	status, respBody, callErr := c.do(http.MethodPost, highlightsPath, nil, body)
	if callErr != nil {
		return "", callErr
	}

	if status != http.StatusOK {
		return "", apiError(deriveErrorMessage(respBody))
	}

	var results []highlightResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		logger.Error("Failed to unmarshal highlights response", "error", err)
		return "", unknownError()
	}
	if len(results) == 0 || strings.TrimSpace(results[0].HighlightsURL) == "" {
		return "", emptyError("the response was empty")
	}
	return strings.TrimSpace(results[0].HighlightsURL), nil
}

// DocumentCreate saves a URL (or pre-rendered HTML) to the reading list.
func (c *Client) DocumentCreate(p parse.Params) (SavedDocument, *CallError) {
	body := SaveRequest{
		URL:             p.URL,
		HTML:            p.HTML,
		Tags:            p.Tags,
		ShouldCleanHTML: p.ShouldCleanHTML,
	}

	status, respBody, callErr := c.do(http.MethodPost, savePath, nil, body)
	if callErr != nil {
		return SavedDocument{}, callErr
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return SavedDocument{}, apiError(deriveErrorMessage(respBody))
	}

	var saved SavedDocument
	if err := json.Unmarshal(respBody, &saved); err != nil {
		logger.Error("Failed to unmarshal save response", "error", err)
		return SavedDocument{}, unknownError()
	}
	if saved.URL == "" {
		return SavedDocument{}, emptyError("the response was empty")
	}
	return saved, nil
}

// DocumentList fetches recently saved reading-list entries matching the
// parsed filters.
func (c *Client) DocumentList(p parse.Params) ([]Document, *CallError) {
	query := url.Values{}
	if p.Category != "" {
		query.Set("category", p.Category)
	}
	if p.Location != "" {
		query.Set("location", p.Location)
	}
	// Arrays expand to repeated query keys.
	for _, tag := range p.Tags {
		query.Add("tag", tag)
	}
	query.Set("withHtmlContent", boolString(p.WithHTMLContent))

	return c.list(query)
}

// DocumentFetch retrieves a single document by id, including its distilled
// HTML content.
func (c *Client) DocumentFetch(id string) (Document, *CallError) {
	query := url.Values{}
	query.Set("id", id)
	query.Set("withHtmlContent", "true")

	docs, callErr := c.list(query)
	if callErr != nil {
		return Document{}, callErr
	}
	return docs[0], nil
}

func (c *Client) list(query url.Values) ([]Document, *CallError) {
	status, respBody, callErr := c.do(http.MethodGet, listPath, query, nil)
	if callErr != nil {
		return nil, callErr
	}

	if status != http.StatusOK {
		return nil, apiError(deriveErrorMessage(respBody))
	}

	var resp listResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		logger.Error("Failed to unmarshal list response", "error", err)
		return nil, unknownError()
	}
	if len(resp.Results) == 0 {
		return nil, emptyError("the response was empty")
	}
	return resp.Results, nil
}

// do issues one request and returns the status plus raw body. A non-nil
// *CallError from do is always transport-level; status interpretation
// belongs to the callers.
func (c *Client) do(method, path string, query url.Values, body any) (int, []byte, *CallError) {
	requestURL := c.BaseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	var jsonData []byte
	if body != nil {
		var err error
		jsonData, err = json.Marshal(body)
		if err != nil {
			logger.Error("Failed to marshal API request", "error", err)
			return 0, nil, transportError("failed to encode request: " + err.Error())
		}
		reqBody = bytes.NewReader(jsonData)
	}

	logger.Debug("Sending API request",
		"method", method,
		"url", requestURL,
		"token", maskToken(c.Token),
		"request_size", len(jsonData))

	req, err := http.NewRequest(method, requestURL, reqBody)
	if err != nil {
		logger.Error("Failed to create HTTP request", "error", err)
		return 0, nil, transportError("failed to create request: " + err.Error())
	}

	req.Header.Set("Authorization", "Token "+c.Token)
	req.Header.Set("User-Agent", c.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Error("Failed to send API request", "error", err, "url", requestURL)
		return 0, nil, transportError(err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read response body", "error", err)
		return 0, nil, transportError("failed to read response: " + err.Error())
	}

	logger.Debug("Received API response",
		"status_code", resp.StatusCode,
		"response_size", len(respBody))

	if logger.DebugEnabled() {
		var prettyJSON bytes.Buffer
		if err := json.Indent(&prettyJSON, respBody, "", "  "); err == nil {
			logger.Debug("API response body", "json", prettyJSON.String())
		} else {
			logger.Debug("API response body (raw)", "json", string(respBody))
		}
	}

	return resp.StatusCode, respBody, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return ""
	}
	return token[:4] + "..." + token[len(token)-4:]
}
