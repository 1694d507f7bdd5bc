package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Extracted PDF text
	Material string
	// Free-form user instruction (notes / questions)
	Instruction string
	// Quiz
	QuestionCount int
	// Chat
	Question string
	// Mentor
	Subject     string
	TotalDays   string
	HoursPerDay string
	Level       string
	Notes       string
}
