package chatreply

import "archibald/internal/models"

type Input struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	Response string                   `json:"response"`
	Language string                   `json:"language"`
	Tags     []string                 `json:"tags"`
	Date     *models.Date             `json:"date,omitempty"`
	Party    *models.PartyComposition `json:"party,omitempty"`
	// Facts is the factual block handed to the generation backend.
	Facts string `json:"facts"`
}
