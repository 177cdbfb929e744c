package gems

// GemType identifies why gems were awarded.
type GemType string

const (
	// GemCorrect is awarded for a correct answer on either attempt.
	GemCorrect GemType = "correct"
	// GemEffort is the consolation award when both attempts are wrong.
	GemEffort GemType = "effort"
)

// Reward amounts per question outcome.
const (
	CorrectReward = 25
	EffortReward  = 5
)

// AllGemTypes returns all gem types in display order.
func AllGemTypes() []GemType {
	return []GemType{GemCorrect, GemEffort}
}

// Amount returns the gems awarded for t.
func (t GemType) Amount() int {
	switch t {
	case GemCorrect:
		return CorrectReward
	case GemEffort:
		return EffortReward
	default:
		return 0
	}
}

// DisplayName returns a human-readable label for the gem type.
func (t GemType) DisplayName() string {
	switch t {
	case GemCorrect:
		return "Correct answer"
	case GemEffort:
		return "Good effort"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the gem type.
func (t GemType) Icon() string {
	switch t {
	case GemCorrect:
		return "💎"
	case GemEffort:
		return "✨"
	default:
		return "◆"
	}
}
