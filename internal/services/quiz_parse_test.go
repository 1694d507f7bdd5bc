package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeQuestions = `{"questions":[
 {"question":"Q1","options":["a","b","c","d"],"answer_index":0},
 {"question":"Q2","options":["a","b","c","d"],"answer_index":2},
 {"question":"Q3","options":["a","b","c","d"],"answer_index":3}
]}`

func TestParseQuizOutput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		outcome string
		wantErr bool
	}{
		{name: "plain json", raw: threeQuestions, want: 3, outcome: QuizOutcomeOK},
		{name: "fenced", raw: "```json\n" + threeQuestions + "\n```", want: 3, outcome: QuizOutcomeRepaired},
		{name: "prose around object", raw: "Sure! Here is your quiz:\n" + threeQuestions + "\nGood luck.", want: 3, outcome: QuizOutcomeRepaired},
		{name: "empty list", raw: `{"questions":[]}`, want: 0, outcome: QuizOutcomeOK},
		{name: "missing key", raw: `{"items":[]}`, want: 0, outcome: QuizOutcomeOK},
		{name: "drops malformed entries", raw: `{"questions":[
			{"question":"ok","options":["a","b","c","d"],"answer_index":1},
			{"question":"three options","options":["a","b","c"],"answer_index":1},
			{"question":"bad index","options":["a","b","c","d"],"answer_index":4}
		]}`, want: 1, outcome: QuizOutcomeOK},
		{name: "drops wrongly typed entry", raw: `{"questions":[
			{"question":"ok","options":["a","b","c","d"],"answer_index":1},
			{"question":"string index","options":["a","b","c","d"],"answer_index":"1"}
		]}`, want: 1, outcome: QuizOutcomeOK},
		{name: "only wrongly typed entries", raw: `{"questions":[{"question":"q","options":["a","b","c","d"],"answer_index":"2"}]}`, outcome: QuizOutcomeInvalid, wantErr: true},
		{name: "brace in trailing prose", raw: threeQuestions + "\nHope this helps {you}!", want: 3, outcome: QuizOutcomeRepaired},
		{name: "fenced with trailing note", raw: "```json\n" + threeQuestions + "\n```\nLet me know if you want {more}.", want: 3, outcome: QuizOutcomeRepaired},
		{name: "all malformed", raw: `{"questions":[{"question":"","options":[],"answer_index":0}]}`, outcome: QuizOutcomeInvalid, wantErr: true},
		{name: "not json", raw: "I cannot make a quiz from this.", outcome: QuizOutcomeInvalid, wantErr: true},
		{name: "model error text", raw: "[AI error] Could not reach local model: connection refused", outcome: QuizOutcomeInvalid, wantErr: true},
		{name: "broken object", raw: `{"questions":[{"question":"x"`, outcome: QuizOutcomeInvalid, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome, err := ParseQuizOutput(tt.raw)
			assert.Equal(t, tt.outcome, outcome)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidQuizJSON)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestQuizErrorMessageBoundsExcerpt(t *testing.T) {
	raw := strings.Repeat("é", 500)
	msg := QuizErrorMessage(raw)

	prefix := "AI did not return valid quiz JSON. Please try again with fewer questions or a smaller PDF.\n\nRaw output (first 400 chars):\n"
	require.True(t, strings.HasPrefix(msg, prefix))
	assert.Equal(t, strings.Repeat("é", 400), strings.TrimPrefix(msg, prefix))
}

func TestParseQuestionCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "", want: 5},
		{in: "3", want: 3},
		{in: " 12 ", want: 12},
		{in: "0", want: 5},
		{in: "-2", want: 5},
		{in: "2.5", want: 5},
		{in: "abc", want: 5},
		{in: "٣", want: 5},
		{in: "99999999999999999999999", want: 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseQuestionCount(tt.in), "input %q", tt.in)
	}
}
