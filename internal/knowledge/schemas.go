package knowledge

import "archibald/internal/common/validation"

var (
	regularScheduleSchema = validation.MustCompile("schedule.regular", `{
  "type": "object",
  "required": ["type", "start_date", "end_date", "days_open", "hours"],
  "properties": {
    "type": {"enum": ["regular"]},
    "start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "end_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "days_open": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "hours": {"type": "string", "minLength": 1},
    "last_entry": {"type": "string"}
  }
}`)

	exceptionalScheduleSchema = validation.MustCompile("schedule.exceptional", `{
  "type": "object",
  "required": ["type", "exceptional_opening"],
  "properties": {
    "type": {"enum": ["exceptional"]},
    "exceptional_opening": {"type": "array", "items": {"type": "object"}}
  }
}`)

	exceptionalOpeningSchema = validation.MustCompile("schedule.exceptional_opening", `{
  "type": "object",
  "required": ["date", "hours"],
  "properties": {
    "date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "hours": {"type": "string", "minLength": 1},
    "last_entry": {"type": "string"}
  }
}`)

	fullPricingSchema = validation.MustCompile("pricing.full", `{
  "type": "object",
  "required": ["adult_price", "child_price", "child_free_below_age", "adult_age_threshold"],
  "properties": {
    "adult_price": {"type": "number", "minimum": 0},
    "child_price": {"type": "number", "minimum": 0},
    "child_free_below_age": {"type": "integer", "minimum": 0},
    "adult_age_threshold": {"type": "integer", "minimum": 0},
    "url": {"type": "string"}
  }
}`)

	reducedPricingSchema = validation.MustCompile("pricing.reduced", `{
  "type": "object",
  "required": ["adult", "child"],
  "properties": {
    "adult": {"type": "number", "minimum": 0},
    "child": {"type": "number", "minimum": 0},
    "url": {"type": "string"}
  }
}`)

	infoEntrySchema = validation.MustCompile("general_information.entry", `{
  "type": "object",
  "required": ["key", "value"],
  "properties": {
    "key": {"type": "string", "minLength": 1},
    "value": {"type": ["string", "number", "boolean"]}
  }
}`)

	faqEntrySchema = validation.MustCompile("faq.entry", `{
  "type": "object",
  "required": ["question"],
  "anyOf": [{"required": ["answer"]}, {"required": ["response"]}],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "answer": {"type": "string"},
    "response": {"type": "string"}
  }
}`)
)
