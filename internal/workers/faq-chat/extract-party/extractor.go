// Package extractparty reads the composition of the visiting group, adults
// and children's ages, from a working-language message.
package extractparty

import (
	"regexp"
	"strconv"
	"strings"

	"archibald/internal/common/textnorm"
	"archibald/internal/models"
)

var (
	adultsRe = regexp.MustCompile(`\b(` + textnorm.NumberWordPattern + `) (?:adultes?|adults?|grown ups?|grandes? personnes?)\b`)

	childrenRe = regexp.MustCompile(`\b(` + textnorm.NumberWordPattern + `) (?:enfants?|children|child|kids?|ados?|adolescents?)\b`)

	// "4 ans", "4 et 8 ans", "3 6 et 9 ans" (commas are gone after normalization)
	agesRe = regexp.MustCompile(`\b((?:\d{1,2} (?:et |and )?)*\d{1,2}) (?:ans?|years? old|yo)\b`)

	digitsRe = regexp.MustCompile(`\d{1,2}`)
)

// An age is read in the context of the few words before it.
const contextWords = 4

// adultAge is the age from which an age with no child noun around it
// describes an adult of the party.
const adultAge = 18

var (
	durationWords = wordSet("dans", "depuis", "pendant", "apres", "in", "within", "after")

	adultCountWords = wordSet("adulte", "adultes", "adult", "adults")

	adultNouns = wordSet(
		"femme", "mari", "epouse", "epoux", "conjoint", "conjointe", "compagnon", "compagne",
		"papa", "maman", "pere", "mere", "papi", "papy", "mamie", "grand",
		"wife", "husband", "partner", "mom", "mum", "dad", "father", "mother",
		"grandma", "grandpa", "grandmother", "grandfather",
	)

	childNouns = wordSet(
		"enfant", "enfants", "fille", "filles", "fils", "garcon", "garcons", "bebe", "bebes",
		"ado", "ados", "adolescent", "adolescente", "adolescents", "petit", "petite", "petits",
		"petites", "neveu", "neveux", "niece", "nieces",
		"kid", "kids", "child", "children", "son", "sons", "daughter", "daughters",
		"boy", "boys", "girl", "girls", "baby", "babies", "toddler", "toddlers",
	)
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

type ageKind int

const (
	ageChild ageKind = iota
	ageAdult
	ageIgnored
)

// classifyAge decides what an "N ans" phrase describes from the words just
// before it: a duration ("dans 3 ans"), an adult already counted
// ("2 adultes de 40 ans"), another adult ("ma femme de 40 ans") or a child.
func classifyAge(before []string, age int) ageKind {
	if len(before) > 0 && durationWords[before[len(before)-1]] {
		return ageIgnored
	}
	if len(before) > contextWords {
		before = before[len(before)-contextWords:]
	}

	var child, adult, counted bool
	for _, w := range before {
		child = child || childNouns[w]
		adult = adult || adultNouns[w]
		counted = counted || adultCountWords[w]
	}
	switch {
	case child:
		return ageChild
	case counted:
		return ageIgnored
	case adult || age >= adultAge:
		return ageAdult
	}
	return ageChild
}

// Extract never fails. Absent information yields zero adults and no ages.
func Extract(text string) models.PartyComposition {
	norm := textnorm.Normalize(text)

	var party models.PartyComposition
	for _, m := range adultsRe.FindAllStringSubmatch(norm, -1) {
		if n, ok := textnorm.ParseNumber(m[1]); ok {
			party.Adults += n
		}
	}

	for _, loc := range agesRe.FindAllStringSubmatchIndex(norm, -1) {
		before := strings.Fields(norm[:loc[0]])
		for _, age := range digitsRe.FindAllString(norm[loc[2]:loc[3]], -1) {
			n, err := strconv.Atoi(age)
			if err != nil {
				continue
			}
			switch classifyAge(before, n) {
			case ageChild:
				party.ChildAges = append(party.ChildAges, n)
			case ageAdult:
				party.Adults++
			}
		}
	}

	mentioned := 0
	for _, m := range childrenRe.FindAllStringSubmatch(norm, -1) {
		if n, ok := textnorm.ParseNumber(m[1]); ok {
			mentioned += n
		}
	}
	if mentioned > len(party.ChildAges) {
		party.ChildrenMentioned = mentioned - len(party.ChildAges)
	}

	return party
}
