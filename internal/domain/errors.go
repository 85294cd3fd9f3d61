package domain

import "sort"

// ErrorKind classifies a field-level validation failure. All kinds are
// recoverable by correcting the offending input; none is fatal.
type ErrorKind string

const (
	// MissingRequired marks an absent mandatory field for the current step.
	MissingRequired ErrorKind = "missing_required"
	// OutOfRange marks a numeric field outside its declared [min, max] bound.
	OutOfRange ErrorKind = "out_of_range"
	// Inconsistent marks manual gross declared lower than manual net.
	Inconsistent ErrorKind = "inconsistent"
	// MinimumIncomeNotMet marks Worker-category income below the floor at
	// validation time.
	MinimumIncomeNotMet ErrorKind = "minimum_income_not_met"
)

// FieldError is one validation failure bound to a field.
type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps field keys to their validation failure. An empty map means
// the step passes. Result-level disqualifications (ceiling exceeded, car value
// over the cap, bracket overflow, marriage gate) are never represented here;
// they are valid CalculationResult outcomes.
type FieldErrors map[string]FieldError

// Add records a failure for a field.
func (fe FieldErrors) Add(field string, kind ErrorKind, message string) {
	fe[field] = FieldError{Kind: kind, Message: message}
}

// Empty reports whether the step passed.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Fields returns the offending field keys in stable order.
func (fe FieldErrors) Fields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
