package chat

import (
	"fmt"
	"strings"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

const welcomeBody = "Hi there! Welcome to Quality Blinds Australia. " +
	"I can help you with product information, free quotes, samples and bookings. " +
	"What are you looking for today?"

const limitBody = "We've covered a lot in this conversation! To keep things " +
	"snappy I'll start a fresh chat in a moment. If you'd like to continue " +
	"where we left off, request a free quote or give us a call."

const contactBody = "You can reach Quality Blinds Australia at our Randwick " +
	"showroom, 131 Botany St, or call us on %s. We're open Monday to Friday " +
	"9am-5pm and Saturday 9am-2pm."

const samplesBody = "Great choice! I'll open the sample request form for you. " +
	"Pick up to three fabrics and we'll post them out free of charge."

const bookingBody = "Perfect! I'll open the booking form so you can lock in a " +
	"free measure and quote. One of our consultants will visit, measure your " +
	"windows and bring samples with them."

const quoteBody = "We offer free quotes! The most accurate option is a free " +
	"home visit where we measure and bring samples. Prefer to talk it through " +
	"first? Give us a call. How would you like to proceed?"

const callBody = "Calling now... If the call doesn't start automatically, " +
	"dial %s."

const browseBody = "Here's our range. I'm opening the full catalogue for you " +
	"as well - tap a category to explore."

const faqBody = "Here are the questions we get asked most. Tap one or type " +
	"your own."

var catalogCategories = []string{
	"Roller Blinds",
	"Roman Blinds",
	"Venetian Blinds",
	"Curtains",
	"Shutters",
	"Awnings",
}

var faqQuestions = []string{
	"How much do roller blinds cost?",
	"Do you offer free measure and quote?",
	"How long does installation take?",
	"Are your blinds child safe?",
	"What warranty do you offer?",
}

// productInfo holds the static info blocks emitted by the PRODUCT_INFO
// quick action, keyed by detected category.
var productInfo = map[string]string{
	"roller blind": "Our roller blinds come in blockout, light-filtering and " +
		"sunscreen fabrics, all custom made in Sydney. Motorised options are " +
		"available and most orders are installed within two weeks.",
	"roman blind": "Roman blinds add a soft, tailored look. Choose from " +
		"hundreds of fabrics with chain or motorised control, lined or " +
		"translucent.",
	"venetian blind": "Venetian blinds are available in aluminium, basswood " +
		"and PVC, with 25mm, 50mm and 63mm slats. A practical choice for " +
		"kitchens and bathrooms.",
	"shutter": "Our plantation shutters are custom built from basswood, " +
		"PVC or aluminium, ideal for both insulation and street appeal.",
	"curtain": "We custom make sheer, blockout and veri-shade curtains with " +
		"a full in-home colour consultation included on request.",
	"awning": "Folding arm, straight drop and auto awnings protect your " +
		"outdoor areas year round. All are wind rated and can be motorised.",
	"folding arm": "Folding arm awnings extend up to 4 metres with no posts " +
		"or beams, perfect for patios and decks. Wind sensors and motors " +
		"are available.",
}

// defaultQuickActions is the fixed set attached to welcome-style replies
func defaultQuickActions() []domain.QuickAction {
	return []domain.QuickAction{
		{ID: "qa-quote", Label: "Request a quote", Code: domain.ActionRequestQuote, Icon: "calculator"},
		{ID: "qa-browse", Label: "Browse products", Code: domain.ActionBrowseProducts, Icon: "grid"},
		{ID: "qa-faq", Label: "Common questions", Code: domain.ActionShowFAQ, Icon: "help"},
		{ID: "qa-call", Label: "Call us", Code: domain.ActionCallUs, Icon: "phone"},
	}
}

func limitQuickActions() []domain.QuickAction {
	return []domain.QuickAction{
		{ID: "qa-quote", Label: "Request a quote", Code: domain.ActionRequestQuote, Icon: "calculator"},
		{ID: "qa-call", Label: "Call us", Code: domain.ActionCallUs, Icon: "phone"},
	}
}

func welcomeMessage() *domain.Message {
	msg := domain.NewMessage(domain.AuthorAssistant, welcomeBody)
	msg.QuickActions = defaultQuickActions()
	return msg
}

func limitMessage() *domain.Message {
	msg := domain.NewMessage(domain.AuthorAssistant, limitBody)
	msg.QuickActions = limitQuickActions()
	return msg
}

func contactMessage(phone string) *domain.Message {
	return domain.NewMessage(domain.AuthorAssistant, fmt.Sprintf(contactBody, phone))
}

func productInfoBody(product string) (string, bool) {
	body, ok := productInfo[strings.ToLower(product)]
	return body, ok
}
