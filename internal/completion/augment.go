package completion

import (
	"strings"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// bookingKeywords flag replies that talk about scheduling. Matching is a
// heuristic augmentation layer on top of the remote output, applied to
// remote replies only.
var bookingKeywords = []string{
	"book",
	"schedule",
	"consultation",
	"measurement",
	"appointment",
	"free quote",
}

// bookingActions returns the fixed booking quick-action pair when the reply
// contains booking or scheduling language, nil otherwise.
func bookingActions(reply string) []domain.QuickAction {
	lower := strings.ToLower(reply)
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return []domain.QuickAction{
				{ID: "qa-book", Label: "Book a consultation", Code: domain.ActionBookConsultation, Icon: "calendar"},
				{ID: "qa-call", Label: "Call now", Code: domain.ActionCallUs, Icon: "phone"},
			}
		}
	}
	return nil
}
