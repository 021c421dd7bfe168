package enums

import "fmt"

// MutationOutcome describes what a write operation actually did, so callers
// never inspect driver-level result fields.
type MutationOutcome string

const (
	MutationOutcomeInserted MutationOutcome = "inserted"
	MutationOutcomeUpdated  MutationOutcome = "updated"
	MutationOutcomeUpserted MutationOutcome = "upserted"
	MutationOutcomeNoChange MutationOutcome = "no_change"
	MutationOutcomeNotFound MutationOutcome = "not_found"
)

var validMutationOutcomes = []MutationOutcome{
	MutationOutcomeInserted,
	MutationOutcomeUpdated,
	MutationOutcomeUpserted,
	MutationOutcomeNoChange,
	MutationOutcomeNotFound,
}

// String implements fmt.Stringer.
func (o MutationOutcome) String() string {
	return string(o)
}

// IsValid reports whether the value is a known MutationOutcome.
func (o MutationOutcome) IsValid() bool {
	for _, candidate := range validMutationOutcomes {
		if candidate == o {
			return true
		}
	}
	return false
}

// Mutated reports whether the outcome changed persistent state.
func (o MutationOutcome) Mutated() bool {
	switch o {
	case MutationOutcomeInserted, MutationOutcomeUpdated, MutationOutcomeUpserted:
		return true
	}
	return false
}

// ParseMutationOutcome converts raw input into a MutationOutcome.
func ParseMutationOutcome(value string) (MutationOutcome, error) {
	for _, candidate := range validMutationOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mutation outcome %q", value)
}
