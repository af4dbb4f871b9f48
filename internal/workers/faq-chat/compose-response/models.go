package composeresponse

import (
	"archibald/internal/models"
	calculateprice "archibald/internal/workers/faq-chat/calculate-price"
	checkavailability "archibald/internal/workers/faq-chat/check-availability"
)

// BlockKind names a factual block. Blocks always appear in the order the
// kinds are declared here.
type BlockKind string

const (
	BlockSchedule BlockKind = "schedule"
	BlockPrice    BlockKind = "price"
	BlockPet      BlockKind = "pet"
	BlockParking  BlockKind = "parking"
	BlockChildren BlockKind = "children"
	BlockFAQ      BlockKind = "faq"
	BlockGreeting BlockKind = "greeting"
)

type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// Input is everything the composer needs about one message.
type Input struct {
	// Question is the message in the working language.
	Question string
	Tags     models.IntentTags
	Date     models.Date
	Party    models.PartyComposition
	// Language is the language the final reply must be written in.
	Language string
}

// Match is the best FAQ or general information hit for a question.
type Match struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// Answer is the structured result of composition.
type Answer struct {
	Blocks       []Block                   `json:"blocks"`
	Facts        string                    `json:"facts"`
	Availability *checkavailability.Result `json:"availability,omitempty"`
	Quote        *calculateprice.Quote     `json:"quote,omitempty"`
	FAQ          *Match                    `json:"faq,omitempty"`
	Prompt       string                    `json:"prompt"`
}

// Kinds lists the block kinds in output order.
func (a *Answer) Kinds() []BlockKind {
	kinds := make([]BlockKind, 0, len(a.Blocks))
	for _, b := range a.Blocks {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}
