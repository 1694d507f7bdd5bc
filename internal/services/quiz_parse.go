package services

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/yungbote/prepgenius-backend/internal/domain"
)

const (
	QuizOutcomeOK       = "ok"
	QuizOutcomeRepaired = "repaired"
	QuizOutcomeInvalid  = "invalid"

	quizExcerptRunes = 400
)

var ErrInvalidQuizJSON = errors.New("AI did not return valid quiz JSON. Please try again with fewer questions or a smaller PDF.")

type quizEnvelope struct {
	Questions []json.RawMessage `json:"questions"`
}

// ParseQuizOutput decodes model output into quiz questions. When the raw text
// is not JSON it makes one local repair attempt: strip markdown fences and take
// the first complete {...} value. Entries that do not decode as well-formed
// four-option questions are dropped one by one.
func ParseQuizOutput(raw string) ([]domain.QuizQuestion, string, error) {
	env, err := decodeQuiz(raw)
	outcome := QuizOutcomeOK
	if err != nil {
		repaired, ok := repairJSONObject(raw)
		if !ok {
			return nil, QuizOutcomeInvalid, ErrInvalidQuizJSON
		}
		env, err = decodeQuiz(repaired)
		if err != nil {
			return nil, QuizOutcomeInvalid, ErrInvalidQuizJSON
		}
		outcome = QuizOutcomeRepaired
	}

	out := make([]domain.QuizQuestion, 0, len(env.Questions))
	for _, entry := range env.Questions {
		var q domain.QuizQuestion
		if err := json.Unmarshal(entry, &q); err != nil || !q.Valid() {
			continue
		}
		out = append(out, q)
	}
	if len(env.Questions) > 0 && len(out) == 0 {
		return nil, QuizOutcomeInvalid, ErrInvalidQuizJSON
	}
	return out, outcome, nil
}

func decodeQuiz(s string) (quizEnvelope, error) {
	var env quizEnvelope
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(s)))
	if err := dec.Decode(&env); err != nil {
		return quizEnvelope{}, err
	}
	if dec.More() {
		return quizEnvelope{}, errors.New("trailing data after quiz JSON")
	}
	return env, nil
}

func repairJSONObject(s string) (string, bool) {
	s = stripCodeFence(s)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	var obj json.RawMessage
	if err := json.NewDecoder(strings.NewReader(s[start:])).Decode(&obj); err != nil {
		return "", false
	}
	return string(obj), true
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// QuizErrorMessage is the client-facing body for unparseable quiz output,
// carrying at most the first 400 characters of what the model said.
func QuizErrorMessage(raw string) string {
	return ErrInvalidQuizJSON.Error() + "\n\nRaw output (first " + strconv.Itoa(quizExcerptRunes) + " chars):\n" +
		domain.TruncateRunes(raw, quizExcerptRunes)
}

// ParseQuestionCount accepts a positive all-digit string; anything else is the default.
func ParseQuestionCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultQuizQuestions
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return defaultQuizQuestions
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultQuizQuestions
	}
	return n
}
