package prompts

// Typed wrappers over Build for the call sites that know exactly which prompt they want.

func Notes(instruction, material string) (string, error) {
	return Build(PromptNotes, Input{Instruction: instruction, Material: material})
}

func Questions(instruction, material string) (string, error) {
	return Build(PromptQuestions, Input{Instruction: instruction, Material: material})
}

func Quiz(count int, material string) (string, error) {
	return Build(PromptQuiz, Input{QuestionCount: count, Material: material})
}

func Chat(question string) (string, error) {
	return Build(PromptChat, Input{Question: question})
}

type MentorInput struct {
	Subject     string
	TotalDays   string
	HoursPerDay string
	Level       string
	Notes       string
}

func Mentor(m MentorInput) (string, error) {
	return Build(PromptMentor, Input{
		Subject:     m.Subject,
		TotalDays:   m.TotalDays,
		HoursPerDay: m.HoursPerDay,
		Level:       m.Level,
		Notes:       m.Notes,
	})
}
