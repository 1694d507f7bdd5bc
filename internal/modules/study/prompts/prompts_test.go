package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNotesEmbedsInstructionAndMaterial(t *testing.T) {
	p, err := Notes("Summarize chapter 2", "Mitochondria are the powerhouse.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "You will receive study material extracted from a PDF."))
	assert.Contains(t, p, "Instruction: Summarize chapter 2")
	assert.Contains(t, p, "PDF content:\nMitochondria are the powerhouse.")
	assert.True(t, strings.HasSuffix(p, "produce a helpful answer for a student."))
}

func TestNotesAndQuestionsDefaultInstructions(t *testing.T) {
	n, err := Notes("  ", "text")
	require.NoError(t, err)
	assert.Contains(t, n, "Instruction: "+DefaultNotesInstruction)

	q, err := Questions("", "text")
	require.NoError(t, err)
	assert.Contains(t, q, "Instruction: "+DefaultQuestionsInstruction)
}

func TestQuizDemandsStrictJSON(t *testing.T) {
	p, err := Quiz(3, "Photosynthesis converts light.")
	require.NoError(t, err)
	assert.Contains(t, p, "create 3 multiple-choice questions")
	assert.Contains(t, p, "Return ONLY valid JSON. No explanation before or after.")
	assert.Contains(t, p, `"answer_index": 0`)
	assert.Contains(t, p, `"options": ["option A", "option B", "option C", "option D"]`)
	assert.True(t, strings.HasSuffix(p, "Study material:\nPhotosynthesis converts light."))
}

func TestQuizDefaultsCount(t *testing.T) {
	p, err := Quiz(0, "x")
	require.NoError(t, err)
	assert.Contains(t, p, "create 5 multiple-choice questions")
}

func TestChatPersona(t *testing.T) {
	p, err := Chat("What is osmosis?")
	require.NoError(t, err)
	assert.Equal(t, "You are a helpful tutor. Answer the student's question clearly.\n\nQuestion: What is osmosis?", p)

	_, err = Chat(" ")
	require.Error(t, err)
}

func TestMentorDefaultsLevel(t *testing.T) {
	p, err := Mentor(MentorInput{Subject: "Linear algebra", TotalDays: "10", HoursPerDay: "2"})
	require.NoError(t, err)
	assert.Contains(t, p, "Subject / Topic: Linear algebra")
	assert.Contains(t, p, "Total days to finish: 10")
	assert.Contains(t, p, "Hours per day: 2")
	assert.Contains(t, p, "Level: beginner / intermediate")
	assert.Contains(t, p, "Day number, Topics, and Tasks")

	p, err = Mentor(MentorInput{Subject: "Go", TotalDays: "3", HoursPerDay: "1", Level: "advanced", Notes: "exam on Friday"})
	require.NoError(t, err)
	assert.Contains(t, p, "Level: advanced")
	assert.Contains(t, p, "Extra notes: exam on Friday")
}

func TestMentorRequiresFields(t *testing.T) {
	_, err := Mentor(MentorInput{Subject: "Go"})
	require.Error(t, err)
}

func TestMaterialIsNotInterpretedAsTemplate(t *testing.T) {
	p, err := Notes("", "{{.Instruction}} literal")
	require.NoError(t, err)
	assert.Contains(t, p, "{{.Instruction}} literal")
}

func TestUnknownPrompt(t *testing.T) {
	_, err := Build("flashcards", Input{})
	require.Error(t, err)
}
