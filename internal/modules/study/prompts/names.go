package prompts

type PromptName string

const (
	PromptNotes     PromptName = "notes"
	PromptQuiz      PromptName = "quiz"
	PromptQuestions PromptName = "questions"
	PromptChat      PromptName = "chat"
	PromptMentor    PromptName = "mentor"
)

const (
	DefaultNotesInstruction     = "Create clear, well-structured study notes with headings and bullet points."
	DefaultQuestionsInstruction = "Create exam-style descriptive questions from this PDF."
	DefaultMentorLevel          = "beginner / intermediate"
	DefaultQuizQuestions        = 5
)
