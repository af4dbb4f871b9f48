package calculateprice

// Band is the tariff a single child falls into.
type Band string

const (
	BandFree  Band = "free"
	BandChild Band = "child"
	BandAdult Band = "adult"
)

// ChildCharge is one line of the per-child breakdown.
type ChildCharge struct {
	Age    int     `json:"age"`
	Band   Band    `json:"band"`
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
}

// Quote is the result of a price calculation. Children keeps the order of
// the input ages.
type Quote struct {
	Adults     int           `json:"adults"`
	Total      float64       `json:"total"`
	Children   []ChildCharge `json:"children"`
	Disclaimer string        `json:"disclaimer"`
}

// Breakdown returns the per-child labels in input order.
func (q Quote) Breakdown() []string {
	labels := make([]string, 0, len(q.Children))
	for _, c := range q.Children {
		labels = append(labels, c.Label)
	}
	return labels
}
