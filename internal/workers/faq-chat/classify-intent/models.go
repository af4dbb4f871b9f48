package classifyintent

// Tag names one intent topic.
type Tag string

const (
	TagSchedule Tag = "schedule"
	TagPrice    Tag = "price"
	TagPet      Tag = "pet"
	TagParking  Tag = "parking"
)

// Table maps a tag to its keywords per ISO 639-1 language code.
type Table map[Tag]map[string][]string

type matcher struct {
	phrase string
	prefix bool
	raw    string
}
