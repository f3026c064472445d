package chat

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/config"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// Effects receives the side effects quick actions can fire. The rendering
// layer owns the actual dialogs, navigation and phone integration; the
// engine only dispatches.
type Effects interface {
	OpenQuoteDialog(draft domain.ExtractedLeadDraft)
	OpenSamplesDialog()
	NavigateTo(route string)
	InitiateCall(number string)
}

// IntentRouter maps the fixed quick-action vocabulary to deterministic
// response templates and at most one side effect per action.
type IntentRouter struct {
	cfg config.ChatConfig
}

func NewIntentRouter(cfg config.ChatConfig) *IntentRouter {
	return &IntentRouter{cfg: cfg}
}

// Route produces the assistant reply for code and dispatches its side
// effect, if any. A nil return means the action produced nothing; the only
// such case is PRODUCT_INFO without a product in context.
func (r *IntentRouter) Route(code domain.ActionCode, convCtx *domain.ConversationContext, draft domain.ExtractedLeadDraft, effects Effects) *domain.Message {
	switch code {
	case domain.ActionRequestQuote:
		convCtx.UserIntent = "quote"
		msg := domain.NewMessage(domain.AuthorAssistant, quoteBody)
		msg.QuickActions = []domain.QuickAction{
			{ID: "qa-home-visit", Label: "Book a free home visit", Code: domain.ActionBookHomeVisit, Icon: "home"},
			{ID: "qa-call", Label: "Call us instead", Code: domain.ActionCallUs, Icon: "phone"},
		}
		return msg

	case domain.ActionBookHomeVisit, domain.ActionBookConsultation:
		convCtx.UserIntent = "booking"
		msg := domain.NewMessage(domain.AuthorAssistant, bookingBody)
		msg.QuickActions = []domain.QuickAction{
			{ID: "qa-call", Label: "Call us", Code: domain.ActionCallUs, Icon: "phone"},
		}
		if effects != nil {
			effects.OpenQuoteDialog(draft)
		}
		return msg

	case domain.ActionRequestSamples:
		convCtx.UserIntent = "samples"
		msg := domain.NewMessage(domain.AuthorAssistant, samplesBody)
		if effects != nil {
			effects.OpenSamplesDialog()
		}
		return msg

	case domain.ActionProductInfo:
		if convCtx.LastProductMentioned == "" {
			// No product in context means nothing to say. Intentional no-op.
			log.Debug().Msg("PRODUCT_INFO without product in context, skipping")
			return nil
		}
		body, ok := productInfoBody(convCtx.LastProductMentioned)
		if !ok {
			body = fmt.Sprintf("We custom make %ss right here in Sydney. "+
				"Ask me anything about fabrics, pricing or installation.",
				strings.ToLower(convCtx.LastProductMentioned))
		}
		msg := domain.NewMessage(domain.AuthorAssistant, body)
		msg.QuickActions = []domain.QuickAction{
			{ID: "qa-quote", Label: "Request a quote", Code: domain.ActionRequestQuote, Icon: "calculator"},
			{ID: "qa-samples", Label: "Request samples", Code: domain.ActionRequestSamples, Icon: "swatch"},
		}
		return msg

	case domain.ActionBrowseProducts:
		msg := domain.NewMessage(domain.AuthorAssistant, browseBody)
		msg.Suggestions = append([]string(nil), catalogCategories...)
		if effects != nil {
			effects.NavigateTo(r.cfg.CatalogRoute)
		}
		return msg

	case domain.ActionContactInfo:
		return contactMessage(r.cfg.Phone)

	case domain.ActionShowFAQ:
		msg := domain.NewMessage(domain.AuthorAssistant, faqBody)
		msg.Suggestions = append([]string(nil), faqQuestions...)
		return msg

	case domain.ActionCallUs:
		msg := domain.NewMessage(domain.AuthorAssistant, fmt.Sprintf(callBody, r.cfg.Phone))
		if effects != nil {
			effects.InitiateCall(r.cfg.Phone)
		}
		return msg
	}

	log.Warn().Str("action", string(code)).Msg("unknown quick action")
	return nil
}
