// Package extract derives structured lead data from raw conversation text.
//
// Everything here is rule-based keyword and regex scanning: first match wins
// per field, no external calls, no state. The tables are a best-effort
// classifier over chat language, not a parser.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// productKeywords is scanned in order; the first hit wins
var productKeywords = []string{
	"roller blind",
	"roman blind",
	"venetian blind",
	"shutter",
	"curtain",
	"awning",
	"folding arm",
}

// roomKeywords maps trigger words to the room reported on the lead, in
// priority order
var roomKeywords = []struct {
	keyword string
	room    string
}{
	{"bedroom", "Bedroom"},
	{"living room", "Living Room"},
	{"kitchen", "Kitchen"},
	{"bathroom", "Bathroom"},
	{"office", "Office"},
	{"dining", "Dining Room"},
	{"outdoor", "Outdoor"},
	{"patio", "Outdoor"},
	{"balcony", "Outdoor"},
}

// budgetBands is checked in order against the normalized text
var budgetBands = []struct {
	band     string
	keywords []string
}{
	{"under-500", []string{"under 500", "less than 500", "below 500"}},
	{"500-1000", []string{"500-1000", "500 to 1000", "under 1000", "less than 1000", "about 1000", "around 1000"}},
	{"1000-2000", []string{"1000-2000", "1000 to 2000", "under 2000", "less than 2000", "about 2000", "around 2000"}},
	{"2000-5000", []string{"2000-5000", "2000 to 5000", "under 5000", "less than 5000", "about 5000", "around 5000"}},
	{"over-5000", []string{"over 5000", "more than 5000", "above 5000", "5000+"}},
}

var urgencyKeywords = []struct {
	urgency  string
	keywords []string
}{
	{"asap", []string{"asap", "immediately", "urgent"}},
	{"this-month", []string{"soon", "this month"}},
	{"next-month", []string{"next month"}},
	{"just-browsing", []string{"no rush", "planning", "browsing"}},
}

// localities are matched case-insensitively and reported with this casing
var localities = []string{
	"Sydney", "Melbourne", "Brisbane", "Perth", "Adelaide", "Canberra",
	"Gold Coast", "Newcastle", "Wollongong", "Hobart", "Geelong", "Darwin",
	"Parramatta", "Penrith", "Liverpool", "Blacktown", "Chatswood",
	"Bondi", "Randwick", "Mosman", "Cronulla", "Hurstville", "Manly",
	"Sutherland", "Campbelltown",
}

var (
	windowCountRx = regexp.MustCompile(`(?i)(\d+)\s*(?:window|blind|shutter|awning)`)
	dimensionRx   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(mm|cm|m)\b[^\d]{0,20}?\b(?:wide|width|by|x)\b[^\d]{0,20}?(\d+(?:\.\d+)?)\s*(mm|cm|m)\b`)
	postcodeRx    = regexp.MustCompile(`\b(\d{4})\b`)
	addressRx     = regexp.MustCompile(`(?i)\b\d+[a-z]?\s+[a-z]+(?:\s+[a-z]+)?\s+(?:street|st|road|rd|avenue|ave|drive|dr|lane|ln|place|pl|parade|crescent|cres)\b`)
)

// DetectProduct returns the first product category mentioned in text, or
// the empty string. Used both for the lead draft and for keeping
// ConversationContext.LastProductMentioned current.
func DetectProduct(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range productKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

// LeadDraft scans the full transcript text and produces a lead form draft.
// Pure and idempotent: the same input always yields the same draft.
func LeadDraft(text string, convCtx domain.ConversationContext) domain.ExtractedLeadDraft {
	lower := strings.ToLower(text)
	draft := domain.ExtractedLeadDraft{}

	draft.DetectedProduct = DetectProduct(text)
	if draft.DetectedProduct == "" {
		draft.DetectedProduct = convCtx.LastProductMentioned
	}

	for _, rk := range roomKeywords {
		if strings.Contains(lower, rk.keyword) {
			draft.RoomType = rk.room
			break
		}
	}

	if m := windowCountRx.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			if n > 5 {
				draft.WindowCount = "5+"
			} else {
				draft.WindowCount = m[1]
			}
		}
	}

	if m := dimensionRx.FindStringSubmatch(text); m != nil {
		draft.Width = toMillimetres(m[1], m[2])
		draft.Height = toMillimetres(m[3], m[4])
	}

	normalized := strings.NewReplacer("$", "", ",", "").Replace(lower)
	for _, bb := range budgetBands {
		if draft.Budget != "" {
			break
		}
		for _, kw := range bb.keywords {
			if containsAmount(normalized, kw) {
				draft.Budget = bb.band
				break
			}
		}
	}

	for _, uk := range urgencyKeywords {
		if draft.Urgency != "" {
			break
		}
		for _, kw := range uk.keywords {
			if strings.Contains(lower, kw) {
				draft.Urgency = uk.urgency
				break
			}
		}
	}

	if m := postcodeRx.FindStringSubmatch(text); m != nil {
		draft.Postcode = m[1]
	}

	for _, city := range localities {
		if strings.Contains(lower, strings.ToLower(city)) {
			draft.City = city
			break
		}
	}

	if m := addressRx.FindString(text); m != "" {
		draft.Address = strings.TrimSpace(m)
	}

	draft.SummaryComment = summarize(draft)
	return draft
}

// containsAmount reports whether kw occurs in text without digits attached
// on either side, so "under 500" does not fire inside "under 5000" and
// "500 to 1000" does not fire inside "1500 to 1000".
func containsAmount(text, kw string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(kw)
		leadClear := start == 0 || text[start-1] < '0' || text[start-1] > '9'
		trailClear := end >= len(text) || text[end] < '0' || text[end] > '9'
		if leadClear && trailClear {
			return true
		}
		i = start + 1
	}
}

func toMillimetres(value, unit string) int {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(unit) {
	case "cm":
		n *= 10
	case "m":
		n *= 1000
	}
	return int(n)
}

// summarize builds the human-readable audit comment attached to the lead
func summarize(d domain.ExtractedLeadDraft) string {
	var sb strings.Builder
	sb.WriteString("Customer enquired via chat")
	if d.DetectedProduct != "" {
		fmt.Fprintf(&sb, " about %ss", d.DetectedProduct)
	}
	if d.RoomType != "" {
		fmt.Fprintf(&sb, " for the %s", strings.ToLower(d.RoomType))
	}
	if d.WindowCount != "" {
		fmt.Fprintf(&sb, " (%s windows)", d.WindowCount)
	}
	sb.WriteString(".")
	return sb.String()
}
