package prompts

import "strings"

const pdfTaskBody = `
You will receive study material extracted from a PDF.

Instruction: {{.Instruction}}

PDF content:
{{.Material}}

Now follow the instruction carefully and produce a helpful answer for a student.`

func registerAll() {
	RegisterSpec(Spec{
		Name:    PromptNotes,
		Version: 1,
		Body:    pdfTaskBody,
		Defaults: func(in *Input) {
			in.Instruction = orDefault(in.Instruction, DefaultNotesInstruction)
		},
	})

	RegisterSpec(Spec{
		Name:    PromptQuestions,
		Version: 1,
		Body:    pdfTaskBody,
		Defaults: func(in *Input) {
			in.Instruction = orDefault(in.Instruction, DefaultQuestionsInstruction)
		},
	})

	RegisterSpec(Spec{
		Name:    PromptQuiz,
		Version: 1,
		Body: `
You are an exam question generator.

From the study material below, create {{.QuestionCount}} multiple-choice questions.

IMPORTANT RULES:
- Return ONLY valid JSON. No explanation before or after.
- JSON format MUST be:

{
  "questions": [
    {
      "question": "question text",
      "options": ["option A", "option B", "option C", "option D"],
      "answer_index": 0
    }
  ]
}

Where "answer_index" is 0,1,2, or 3 (index into the options array).

Study material:
{{.Material}}`,
		Defaults: func(in *Input) {
			if in.QuestionCount <= 0 {
				in.QuestionCount = DefaultQuizQuestions
			}
		},
	})

	RegisterSpec(Spec{
		Name:    PromptChat,
		Version: 1,
		Body: `
You are a helpful tutor. Answer the student's question clearly.

Question: {{.Question}}`,
		Validators: []Validator{
			RequireNonEmpty("Question", func(in Input) string { return in.Question }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptMentor,
		Version: 1,
		Body: `
You are an expert study planner.

Create a day-by-day study plan.

Subject / Topic: {{.Subject}}
Total days to finish: {{.TotalDays}}
Hours per day: {{.HoursPerDay}}
Level: {{.Level}}
Extra notes: {{.Notes}}

Give the plan in a clear table-style text with Day number, Topics, and Tasks.`,
		Defaults: func(in *Input) {
			in.Level = orDefault(in.Level, DefaultMentorLevel)
		},
		Validators: []Validator{
			RequireNonEmpty("Subject", func(in Input) string { return in.Subject }),
			RequireNonEmpty("TotalDays", func(in Input) string { return in.TotalDays }),
			RequireNonEmpty("HoursPerDay", func(in Input) string { return in.HoursPerDay }),
		},
	})
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
