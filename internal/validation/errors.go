package validation

// Errors accumulates field violations as field -> human-readable message.
// It travels as a value, not as thrown control flow; handlers serialize the
// whole map into one 400 response.
type Errors map[string]string

// GeneralField keys map-level violations that are not tied to one field,
// e.g. an empty partial update.
const GeneralField = "_"

func (e Errors) Error() string { return "validation failed" }

func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}
