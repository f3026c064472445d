package domain

// ExtractedLeadDraft holds structured lead data derived from the transcript.
// It is computed on demand and never stored; Width and Height are millimetres.
type ExtractedLeadDraft struct {
	DetectedProduct string `json:"detectedProduct,omitempty"`
	RoomType        string `json:"roomType,omitempty"`
	WindowCount     string `json:"windowCount,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	Budget          string `json:"budget,omitempty"`
	Urgency         string `json:"urgency,omitempty"`
	Address         string `json:"address,omitempty"`
	Postcode        string `json:"postcode,omitempty"`
	City            string `json:"city,omitempty"`
	SummaryComment  string `json:"summaryComment,omitempty"`
}
