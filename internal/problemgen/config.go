package problemgen

// QuestionsPerFamily is how many questions each family emits per level.
const QuestionsPerFamily = 20

// Config controls bank generation.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// stops generation.
	Validators []Validator

	// QuestionsPerFamily is the number of questions each family emits
	// for each level.
	QuestionsPerFamily int
}

// DefaultConfig returns a Config with the standard validator chain
// and the standard bank size.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{},
			&MathCheckValidator{},
		},
		QuestionsPerFamily: QuestionsPerFamily,
	}
}
