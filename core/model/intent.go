package model

// Intent is the optimization priority a recommendation is ranked under. The
// set is closed: scoring handles every value exhaustively and unknown values
// are rejected at the boundary instead of being defaulted.
type Intent string

const (
	IntentBalanced    Intent = "balanced"
	IntentFastest     Intent = "fastest"
	IntentCheapest    Intent = "cheapest"
	IntentLeastDetour Intent = "least_detour"
	IntentLeastWait   Intent = "least_wait"
)

// Intents lists every supported intent in a stable order.
func Intents() []Intent {
	return []Intent{IntentBalanced, IntentFastest, IntentCheapest, IntentLeastDetour, IntentLeastWait}
}

// ParseIntent validates a raw intent string. Unknown values return an
// UnsupportedIntentError; silently falling back to balanced would hide caller
// bugs.
func ParseIntent(s string) (Intent, error) {
	switch Intent(s) {
	case IntentBalanced, IntentFastest, IntentCheapest, IntentLeastDetour, IntentLeastWait:
		return Intent(s), nil
	}
	return "", &UnsupportedIntentError{Intent: s}
}

func (i Intent) String() string { return string(i) }
