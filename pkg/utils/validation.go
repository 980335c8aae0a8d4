package utils

// FieldErrors is the mutable error bag a validation pass writes field-name ->
// message pairs into. Every independent check records its own message, so the
// caller sees all failures of a submission at once instead of only the first.
type FieldErrors map[string]string

func NewFieldErrors() FieldErrors {
	return make(FieldErrors)
}

// Add records a message for a field. The first message for a field wins.
func (fe FieldErrors) Add(field, message string) {
	if _, exists := fe[field]; !exists {
		fe[field] = message
	}
}

// Check records the message only when ok is false and reports ok back, so it
// can be used as a one-line guard inside a validation pass.
func (fe FieldErrors) Check(ok bool, field, message string) bool {
	if !ok {
		fe.Add(field, message)
	}
	return ok
}

// Merge folds another field -> message map into the bag and reports whether
// anything was merged. Used to fold structural binding errors from
// ValidateStruct into a business validation pass.
func (fe FieldErrors) Merge(other map[string]string) bool {
	for field, message := range other {
		fe.Add(field, message)
	}
	return len(other) > 0
}

func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}
