// Package calculateprice computes an advisory admission total for a party
// under tiered age rules.
package calculateprice

import (
	"fmt"
	"strconv"
	"strings"

	"archibald/internal/models"
)

// Price bills adults at the adult rate and each child by age band. A party
// of children only is billed one accompanying adult.
func Price(adults int, childAges []int, rule models.PricingRule) Quote {
	if adults < 0 {
		adults = 0
	}
	if adults == 0 && len(childAges) > 0 {
		adults = 1
	}

	q := Quote{
		Adults:     adults,
		Total:      float64(adults) * rule.AdultPrice,
		Children:   make([]ChildCharge, 0, len(childAges)),
		Disclaimer: disclaimer(rule),
	}

	for _, age := range childAges {
		charge := ChildCharge{Age: age}
		switch {
		case age < rule.ChildFreeBelowAge:
			charge.Band = BandFree
			charge.Label = fmt.Sprintf("%d ans (gratuit)", age)
		case age >= rule.AdultAgeThreshold:
			charge.Band = BandAdult
			charge.Amount = rule.AdultPrice
			charge.Label = fmt.Sprintf("%d ans (%s€ - tarif adulte)", age, FormatAmount(rule.AdultPrice))
		default:
			charge.Band = BandChild
			charge.Amount = rule.ChildPrice
			charge.Label = fmt.Sprintf("%d ans (%s€)", age, FormatAmount(rule.ChildPrice))
		}
		q.Total += charge.Amount
		q.Children = append(q.Children, charge)
	}

	return q
}

// Summary renders the quote as a single French sentence followed by the
// disclaimer.
func (q Quote) Summary() string {
	details := noChildrenLabel
	if len(q.Children) > 0 {
		details = strings.Join(q.Breakdown(), ", ")
	}
	return fmt.Sprintf("Le prix total estimé est de **%s€** (%d adulte(s), %s). %s",
		FormatAmount(q.Total), q.Adults, details, q.Disclaimer)
}

// FormatAmount prints whole euros without decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func disclaimer(rule models.PricingRule) string {
	if rule.URL == "" {
		return Warning
	}
	return Warning + " " + officialPricesPrefix + rule.URL
}
