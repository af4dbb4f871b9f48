package models

// IntentTags records which topics a message touches. Tags are independent
// and may co-occur.
type IntentTags struct {
	Schedule bool `json:"schedule"`
	Price    bool `json:"price"`
	Pet      bool `json:"pet"`
	Parking  bool `json:"parking"`
}

// General holds when no specific tag matched.
func (t IntentTags) General() bool {
	return !t.Schedule && !t.Price && !t.Pet && !t.Parking
}

// Names lists the set tags in composition order.
func (t IntentTags) Names() []string {
	var names []string
	if t.Schedule {
		names = append(names, "schedule")
	}
	if t.Price {
		names = append(names, "price")
	}
	if t.Pet {
		names = append(names, "pet")
	}
	if t.Parking {
		names = append(names, "parking")
	}
	if len(names) == 0 {
		names = append(names, "general")
	}
	return names
}

// PartyComposition describes the visiting group as extracted from a message.
type PartyComposition struct {
	Adults    int   `json:"adults"`
	ChildAges []int `json:"childAges,omitempty"`
	// ChildrenMentioned counts children referred to without an age, e.g.
	// "2 enfants".
	ChildrenMentioned int `json:"childrenMentioned,omitempty"`
}

// HasData reports whether anything usable for a price calculation was found.
func (p PartyComposition) HasData() bool {
	return p.Adults > 0 || len(p.ChildAges) > 0
}

// HasChildren reports whether the party includes children, aged or not.
func (p PartyComposition) HasChildren() bool {
	return len(p.ChildAges) > 0 || p.ChildrenMentioned > 0
}
