package api

import "encoding/json"

// HighlightRequest is the body posted to the highlights endpoint.
type HighlightRequest struct {
	Highlights []HighlightPayload `json:"highlights"`
}

// HighlightPayload is a single highlight to create.
type HighlightPayload struct {
	Text       string `json:"text"`
	Title      string `json:"title"`
	ImageURL   string `json:"image_url"`
	SourceType string `json:"source_type"`
}

// highlightResult is one element of the highlights endpoint's response array.
type highlightResult struct {
	HighlightsURL string `json:"highlights_url"`
}

// SaveRequest is the body posted to the document save endpoint.
type SaveRequest struct {
	URL             string   `json:"url"`
	HTML            string   `json:"html,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	ShouldCleanHTML bool     `json:"should_clean_html,omitempty"`
}

// SavedDocument is the save endpoint's response.
type SavedDocument struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// listResponse wraps the list endpoint's results array.
type listResponse struct {
	Results []Document `json:"results"`
}

// Document is a single reading-list entry as returned by the list endpoint.
// Highlights and notes appear as documents with ParentID set to the document
// they annotate.
type Document struct {
	ID              string   `json:"id"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	SourceURL       string   `json:"source_url"`
	Category        string   `json:"category"`
	PublishedDate   FlexDate `json:"published_date"`
	CreatedAt       string   `json:"created_at"`
	ReadingProgress float64  `json:"reading_progress"`
	ParentID        *string  `json:"parent_id"`
	Content         string   `json:"content"`
	HTMLContent     string   `json:"html_content"`
	Author          string   `json:"author"`
}

// FlexDate holds a date field that the API serves either as an epoch-millis
// number or as a date string. The raw scalar is kept as text; the display
// layer decides how to parse it.
type FlexDate string

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*d = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = FlexDate(s)
		return nil
	}
	*d = FlexDate(b)
	return nil
}

func (d FlexDate) String() string { return string(d) }
