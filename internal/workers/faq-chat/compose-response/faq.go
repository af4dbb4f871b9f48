package composeresponse

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"archibald/internal/common/textnorm"
	"archibald/internal/models"
)

var dice = &metrics.SorensenDice{NgramSize: 2}

// MatchFAQ scores question against every FAQ question and general
// information key and returns the best candidate. The second result is
// false when the knowledge base has nothing to compare against.
func MatchFAQ(question string, kb *models.KnowledgeBase) (Match, bool) {
	q := textnorm.Normalize(question)
	if q == "" {
		return Match{}, false
	}

	var best Match
	found := false
	consider := func(candidate, answer string) {
		c := textnorm.Normalize(candidate)
		if c == "" || answer == "" {
			return
		}
		score := strutil.Similarity(q, c, dice)
		if !found || score > best.Score {
			best = Match{Question: candidate, Answer: answer, Score: score}
			found = true
		}
	}

	for _, e := range kb.FAQ {
		consider(e.Question, e.Answer)
	}
	for _, e := range kb.GeneralInfo {
		consider(e.Key, e.Value)
	}
	return best, found
}
