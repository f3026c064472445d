package chat

import (
	"regexp"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// greetingRx accepts bare greetings with optional trailing punctuation.
// Deliberately narrow: anything about products, pricing or FAQ goes to the
// remote completion service. Widening this pattern changes behaviour
// materially, so don't.
var greetingRx = regexp.MustCompile(`(?i)^\s*(hello|hi|hey)[\s!.,]*$`)

// RuleMatcher answers trivial inputs locally and flags everything else for
// the remote completion bridge.
type RuleMatcher struct{}

func NewRuleMatcher() *RuleMatcher {
	return &RuleMatcher{}
}

// Classify returns the canned local reply and true for recognized inputs.
// A false result means the input needs the remote completion service; this
// is never an error, classification ambiguity always resolves to remote.
func (m *RuleMatcher) Classify(input string) (*domain.Message, bool) {
	if greetingRx.MatchString(input) {
		return welcomeMessage(), true
	}
	return nil, false
}
