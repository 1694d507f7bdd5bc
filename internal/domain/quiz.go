package domain

import "strings"

const QuizOptionCount = 4

// QuizQuestion is a generated multiple-choice item. It is never persisted.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
}

func (q QuizQuestion) Valid() bool {
	return strings.TrimSpace(q.Question) != "" &&
		len(q.Options) == QuizOptionCount &&
		q.AnswerIndex >= 0 && q.AnswerIndex < QuizOptionCount
}
