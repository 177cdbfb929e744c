package mastery

// Label returns the learner-facing name of a status.
func (s Status) Label() string {
	switch s {
	case StatusUnseen:
		return "Not started"
	case StatusLearning:
		return "Learning"
	case StatusMastered:
		return "Mastered"
	default:
		return string(s)
	}
}

// Icon returns the display icon for a status.
func (s Status) Icon() string {
	switch s {
	case StatusLearning:
		return "◐"
	case StatusMastered:
		return "★"
	default:
		return "○"
	}
}
