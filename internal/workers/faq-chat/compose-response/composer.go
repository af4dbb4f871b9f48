// Package composeresponse assembles the factual answer for a classified
// message and renders the prompt sent to the generation backend.
package composeresponse

import (
	"fmt"
	"strings"

	"archibald/internal/models"
	calculateprice "archibald/internal/workers/faq-chat/calculate-price"
	checkavailability "archibald/internal/workers/faq-chat/check-availability"
)

// Composer is safe for concurrent use; the knowledge base is never mutated.
type Composer struct {
	kb     *models.KnowledgeBase
	config Config
}

func New(kb *models.KnowledgeBase, config Config) *Composer {
	if kb == nil {
		kb = &models.KnowledgeBase{Pricing: models.DefaultPricingRule()}
	}
	return &Composer{kb: kb, config: config.withDefaults()}
}

// Compose builds one block per set tag in the order schedule, price, pet,
// parking. A party with children adds a supervision note. Messages without
// any tag fall back to the FAQ, then to a greeting.
func (c *Composer) Compose(in Input) *Answer {
	ans := &Answer{}

	if in.Tags.Schedule {
		status := checkavailability.Check(in.Date, c.kb.Schedule)
		ans.Availability = &status
		ans.add(BlockSchedule, status.Message()+" "+fmt.Sprintf(scheduleRedirect, c.config.ScheduleURL))
	}

	if in.Tags.Price {
		ans.add(BlockPrice, c.priceBlock(in.Party, ans))
	}

	if in.Tags.Pet {
		ans.add(BlockPet, c.info(models.InfoPetPolicy, defaultPetPolicy))
	}

	if in.Tags.Parking {
		ans.add(BlockParking, c.info(models.InfoParking, fmt.Sprintf(defaultParking, c.config.SiteURL)))
	}

	if in.Party.HasChildren() {
		ans.add(BlockChildren, childrenNote)
	}

	if in.Tags.General() {
		if m, ok := MatchFAQ(in.Question, c.kb); ok && m.Score > c.config.FAQThreshold {
			ans.FAQ = &m
			ans.add(BlockFAQ, m.Answer)
		} else {
			ans.add(BlockGreeting, fmt.Sprintf(greeting, c.config.SiteURL))
		}
	}

	texts := make([]string, 0, len(ans.Blocks))
	for _, b := range ans.Blocks {
		texts = append(texts, b.Text)
	}
	ans.Facts = strings.Join(texts, " ")
	ans.Prompt = BuildPrompt(in.Question, ans.Facts, in.Language, c.config.MaxReplyChars)

	return ans
}

func (c *Composer) priceBlock(party models.PartyComposition, ans *Answer) string {
	rule := c.kb.Pricing
	url := rule.URL
	if url == "" {
		url = c.config.ScheduleURL
	}

	text := fmt.Sprintf(pricingSummary,
		calculateprice.FormatAmount(rule.AdultPrice),
		calculateprice.FormatAmount(rule.ChildPrice),
		rule.ChildFreeBelowAge,
		rule.AdultAgeThreshold,
		url)

	if party.HasData() {
		quote := calculateprice.Price(party.Adults, party.ChildAges, rule)
		ans.Quote = &quote
		text += " " + quote.Summary()
	}
	if party.ChildrenMentioned > 0 {
		text += " " + childAgesRequest
	}
	return text
}

func (c *Composer) info(key, fallback string) string {
	if v, ok := c.kb.Info(key); ok && v != "" {
		return v
	}
	return fallback
}

func (a *Answer) add(kind BlockKind, text string) {
	a.Blocks = append(a.Blocks, Block{Kind: kind, Text: text})
}
