package transaction

// Validate returns a Validation failure carrying messages when predicate
// rejects value. It never touches storage.
func Validate[T any](value T, predicate func(T) bool, messages ...string) error {
	if predicate(value) {
		return nil
	}
	if len(messages) == 0 {
		messages = []string{"invalid value"}
	}
	return NewValidation(messages...)
}

// Validator accumulates the messages of failed checks.
//
//	var v transaction.Validator
//	v.Check(domain.ValidName(b.Name), "name: 1-100 letters, digits or punctuation")
//	if err := v.Err(); err != nil { ... }
type Validator struct {
	messages []string
}

// Check records msg when ok is false.
func (v *Validator) Check(ok bool, msg string) *Validator {
	if !ok {
		v.messages = append(v.messages, msg)
	}
	return v
}

// Err returns nil when every check passed, a Validation failure otherwise.
func (v *Validator) Err() error {
	if len(v.messages) == 0 {
		return nil
	}
	return NewValidation(v.messages...)
}
