package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/prepgenius-backend/internal/data/repos"
	"github.com/yungbote/prepgenius-backend/internal/data/repos/testutil"
	"github.com/yungbote/prepgenius-backend/internal/domain"
	"github.com/yungbote/prepgenius-backend/internal/platform/apierr"
	"github.com/yungbote/prepgenius-backend/internal/platform/ollama"
	"github.com/yungbote/prepgenius-backend/internal/platform/uploads"
)

type stubGateway struct {
	result  ollama.Result
	prompts []string
}

func (g *stubGateway) Generate(_ context.Context, prompt string) ollama.Result {
	g.prompts = append(g.prompts, prompt)
	return g.result
}

type stubExtractor struct {
	text     string
	err      error
	paths    []string
	maxPages []int
}

func (e *stubExtractor) Extract(path string, maxPages int) (string, error) {
	e.paths = append(e.paths, path)
	e.maxPages = append(e.maxPages, maxPages)
	return e.text, e.err
}

type quizOutcomes []string

func (q *quizOutcomes) ObserveQuizParse(outcome string) { *q = append(*q, outcome) }

type studyFixture struct {
	svc       StudyService
	db        *gorm.DB
	gateway   *stubGateway
	extractor *stubExtractor
	outcomes  *quizOutcomes
}

func newStudyFixture(t *testing.T, result ollama.Result) *studyFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	store, err := uploads.NewStore(t.TempDir(), log)
	require.NoError(t, err)

	f := &studyFixture{
		db:        db,
		gateway:   &stubGateway{result: result},
		extractor: &stubExtractor{text: "Photosynthesis converts light into chemical energy."},
		outcomes:  &quizOutcomes{},
	}
	activities := NewActivityLogService(log, repos.NewActivityRepo(db, log), fixedClock(dashNow), nil)
	f.svc = NewStudyService(log, store, f.extractor, f.gateway, activities, f.outcomes)
	return f
}

func (f *studyFixture) activities(t *testing.T) []domain.Activity {
	t.Helper()
	var rows []domain.Activity
	require.NoError(t, f.db.Order("created_at ASC").Find(&rows).Error)
	return rows
}

func fileHeader(t *testing.T, name string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func requireAPIError(t *testing.T, err error, status int, code string) *apierr.Error {
	t.Helper()
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae), "expected *apierr.Error, got %v", err)
	assert.Equal(t, status, ae.Status)
	assert.Equal(t, code, ae.Code)
	return ae
}

func TestChatLogsExactlyOneActivity(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("  X  "))

	answer, err := f.svc.Chat(context.Background(), "  What is osmosis?  ")
	require.NoError(t, err)
	assert.Equal(t, "X", answer)

	require.Len(t, f.gateway.prompts, 1)
	assert.Contains(t, f.gateway.prompts[0], "Question: What is osmosis?")

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ActivityChat, rows[0].Kind)
	assert.Equal(t, "AI Chat question", rows[0].Title)
	assert.Equal(t, "What is osmosis?", rows[0].Details)
	assert.True(t, rows[0].CreatedAt.Equal(dashNow))
}

func TestChatRequiresQuestion(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("unused"))

	_, err := f.svc.Chat(context.Background(), "   ")
	require.ErrorIs(t, err, ErrMissingQuestion)
	requireAPIError(t, err, http.StatusBadRequest, "missing_question")
	assert.Empty(t, f.gateway.prompts)
	assert.Empty(t, f.activities(t))
}

func TestChatGatewayFailureIsInBand(t *testing.T) {
	f := newStudyFixture(t, ollama.Failure(errors.New("connection refused")))

	answer, err := f.svc.Chat(context.Background(), "hi")
	require.NoError(t, err)
	assert.True(t, ollama.IsErrorText(answer))
	assert.Contains(t, answer, "connection refused")

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Contains(t, string(rows[0].Meta), `"modelError":true`)
}

func TestNotesUsesDefaultInstruction(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("# Notes"))

	notes, err := f.svc.Notes(context.Background(), fileHeader(t, "Bio Ch1.pdf", []byte("%PDF-1.4")), "")
	require.NoError(t, err)
	assert.Equal(t, "# Notes", notes)

	require.Len(t, f.extractor.maxPages, 1)
	assert.Equal(t, 8, f.extractor.maxPages[0])
	assert.True(t, strings.HasSuffix(f.extractor.paths[0], "Bio_Ch1.pdf"))
	assert.Contains(t, f.gateway.prompts[0], "Photosynthesis converts light")

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ActivityNotes, rows[0].Kind)
	assert.Equal(t, "Notes from Bio_Ch1.pdf", rows[0].Title)
	assert.Equal(t, "Create clear, well-structured study notes with headings and bullet points.", rows[0].Details)
}

func TestQuestionsKeepsCustomInstruction(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("1. Explain photosynthesis."))

	out, err := f.svc.Questions(context.Background(), fileHeader(t, "bio.pdf", []byte("%PDF")), " Ten short questions ")
	require.NoError(t, err)
	assert.Equal(t, "1. Explain photosynthesis.", out)
	assert.Contains(t, f.gateway.prompts[0], "Instruction: Ten short questions")

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "Questions from bio.pdf", rows[0].Title)
	assert.Equal(t, "Ten short questions", rows[0].Details)
}

func TestDocumentEndpointsRequireFile(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("unused"))
	ctx := context.Background()

	_, err := f.svc.Notes(ctx, nil, "")
	requireAPIError(t, err, http.StatusBadRequest, "missing_file")
	_, err = f.svc.Questions(ctx, nil, "")
	requireAPIError(t, err, http.StatusBadRequest, "missing_file")
	_, err = f.svc.Quiz(ctx, nil, "3")
	ae := requireAPIError(t, err, http.StatusBadRequest, "missing_file")
	assert.Equal(t, "PDF file is required", ae.Error())

	assert.Empty(t, f.gateway.prompts)
	assert.Empty(t, f.activities(t))
}

func TestExtractionFailureIsServerError(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("unused"))
	f.extractor.err = errors.New("malformed xref table")

	_, err := f.svc.Notes(context.Background(), fileHeader(t, "broken.pdf", []byte("nope")), "")
	ae := requireAPIError(t, err, http.StatusInternalServerError, "extract_failed")
	assert.Equal(t, "Could not read text from the uploaded PDF.", apierr.PublicMessage(err))
	assert.NotContains(t, apierr.PublicMessage(err), "xref")
	assert.ErrorIs(t, ae, f.extractor.err)
	assert.Empty(t, f.gateway.prompts)
	assert.Empty(t, f.activities(t))
}

func TestQuizReturnsParsedQuestions(t *testing.T) {
	f := newStudyFixture(t, ollama.Success(threeQuestions))

	qs, err := f.svc.Quiz(context.Background(), fileHeader(t, "cells.pdf", []byte("%PDF")), "3")
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "Q2", qs[1].Question)
	assert.Equal(t, 2, qs[1].AnswerIndex)

	assert.Equal(t, []int{5}, f.extractor.maxPages)
	assert.Contains(t, f.gateway.prompts[0], "create 3 multiple-choice questions")
	assert.Equal(t, []string{QuizOutcomeOK}, []string(*f.outcomes))

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ActivityQuiz, rows[0].Kind)
	assert.Equal(t, "Quiz (3 Qs) from cells.pdf", rows[0].Title)
	assert.Equal(t, "", rows[0].Details)
}

func TestQuizDefaultsQuestionCount(t *testing.T) {
	f := newStudyFixture(t, ollama.Success(threeQuestions))

	_, err := f.svc.Quiz(context.Background(), fileHeader(t, "cells.pdf", []byte("%PDF")), "lots")
	require.NoError(t, err)
	assert.Contains(t, f.gateway.prompts[0], "create 5 multiple-choice questions")
	assert.Equal(t, "Quiz (5 Qs) from cells.pdf", f.activities(t)[0].Title)
}

func TestQuizRejectsNonJSON(t *testing.T) {
	raw := "Here are some questions: " + strings.Repeat("blah ", 200)
	f := newStudyFixture(t, ollama.Success(raw))

	_, err := f.svc.Quiz(context.Background(), fileHeader(t, "cells.pdf", []byte("%PDF")), "3")
	ae := requireAPIError(t, err, http.StatusInternalServerError, "invalid_quiz_json")

	msg := ae.Error()
	assert.True(t, strings.HasPrefix(msg, "AI did not return valid quiz JSON."))
	assert.True(t, strings.HasSuffix(msg, "\n\nRaw output (first 400 chars):\n"+strings.TrimSpace(raw)[:400]))
	assert.Equal(t, []string{QuizOutcomeInvalid}, []string(*f.outcomes))
	assert.Empty(t, f.activities(t))
}

func TestQuizWhenModelUnreachable(t *testing.T) {
	f := newStudyFixture(t, ollama.Failure(errors.New("dial tcp: connection refused")))

	_, err := f.svc.Quiz(context.Background(), fileHeader(t, "cells.pdf", []byte("%PDF")), "3")
	ae := requireAPIError(t, err, http.StatusInternalServerError, "invalid_quiz_json")
	assert.Contains(t, ae.Error(), "[AI error] Could not reach local model")
	assert.Empty(t, f.activities(t))
}

func TestMentorValidatesFields(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("unused"))

	_, err := f.svc.Mentor(context.Background(), MentorRequest{Subject: "Calculus", TotalDays: " "})
	ae := requireAPIError(t, err, http.StatusBadRequest, "missing_fields")
	assert.Equal(t, "Please fill subject, total days, and hours per day. Missing: totalDays, hoursPerDay.", ae.Error())
	assert.Empty(t, f.activities(t))
}

func TestMentorBuildsPlan(t *testing.T) {
	f := newStudyFixture(t, ollama.Success("Day 1: limits"))

	plan, err := f.svc.Mentor(context.Background(), MentorRequest{
		Subject:     "Calculus",
		TotalDays:   "7",
		HoursPerDay: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Day 1: limits", plan)
	assert.Contains(t, f.gateway.prompts[0], "Level: beginner / intermediate")

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "Study plan for Calculus", rows[0].Title)
	assert.Equal(t, "7 days, 2 h/day", rows[0].Details)
	assert.JSONEq(t, `{"level":"beginner / intermediate","totalDays":7,"hoursPerDay":2}`, string(rows[0].Meta))
}

func TestActivityLogTruncates(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewActivityLogService(log, repos.NewActivityRepo(db, log), fixedClock(dashNow.Add(time.Second)), nil)

	row, err := svc.Log(context.Background(), ActivityInput{
		Kind:    domain.ActivityChat,
		Title:   strings.Repeat("t", 250),
		Details: strings.Repeat("ü", 2500),
	})
	require.NoError(t, err)
	assert.Equal(t, 200, len([]rune(row.Title)))
	assert.Equal(t, 2000, len([]rune(row.Details)))
	assert.Nil(t, []byte(row.Meta))

	_, err = svc.Log(context.Background(), ActivityInput{Kind: "flashcards", Title: "x"})
	require.Error(t, err)
}
