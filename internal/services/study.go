package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/yungbote/prepgenius-backend/internal/domain"
	"github.com/yungbote/prepgenius-backend/internal/modules/study/prompts"
	"github.com/yungbote/prepgenius-backend/internal/platform/apierr"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
	"github.com/yungbote/prepgenius-backend/internal/platform/ollama"
	"github.com/yungbote/prepgenius-backend/internal/platform/pdftext"
	"github.com/yungbote/prepgenius-backend/internal/platform/uploads"
)

const defaultQuizQuestions = prompts.DefaultQuizQuestions

var (
	ErrMissingFile     = apierr.BadRequest("missing_file", "PDF file is required")
	ErrMissingQuestion = apierr.BadRequest("missing_question", "Question is required")
)

const missingMentorFieldsMsg = "Please fill subject, total days, and hours per day."

const (
	msgUploadFailed  = "Could not save the uploaded file."
	msgExtractFailed = "Could not read text from the uploaded PDF."
	msgStoreFailed   = "Could not record this activity."
)

type ModelGateway interface {
	Generate(ctx context.Context, prompt string) ollama.Result
}

type TextExtractor interface {
	Extract(path string, maxPages int) (string, error)
}

type UploadStore interface {
	Save(fh *multipart.FileHeader) (uploads.Saved, error)
}

type QuizObserver interface {
	ObserveQuizParse(outcome string)
}

type MentorRequest struct {
	Subject     string
	TotalDays   string
	HoursPerDay string
	Level       string
	Notes       string
}

type StudyService interface {
	Notes(ctx context.Context, file *multipart.FileHeader, instruction string) (string, error)
	Quiz(ctx context.Context, file *multipart.FileHeader, numQuestions string) ([]domain.QuizQuestion, error)
	Questions(ctx context.Context, file *multipart.FileHeader, instruction string) (string, error)
	Chat(ctx context.Context, question string) (string, error)
	Mentor(ctx context.Context, req MentorRequest) (string, error)
}

type studyService struct {
	log        *logger.Logger
	uploads    UploadStore
	extractor  TextExtractor
	gateway    ModelGateway
	activities ActivityLogService
	quizObs    QuizObserver
}

func NewStudyService(
	baseLog *logger.Logger,
	uploads UploadStore,
	extractor TextExtractor,
	gateway ModelGateway,
	activities ActivityLogService,
	quizObs QuizObserver,
) StudyService {
	return &studyService{
		log:        baseLog.With("service", "StudyService"),
		uploads:    uploads,
		extractor:  extractor,
		gateway:    gateway,
		activities: activities,
		quizObs:    quizObs,
	}
}

// material stores the upload and returns its sanitized name and extracted text.
func (s *studyService) material(file *multipart.FileHeader, maxPages int) (string, string, error) {
	if file == nil {
		return "", "", ErrMissingFile
	}
	saved, err := s.uploads.Save(file)
	if err != nil {
		return "", "", apierr.Internal("upload_failed", msgUploadFailed, err)
	}
	text, err := s.extractor.Extract(saved.Path, maxPages)
	if err != nil {
		s.log.Warn("pdf extraction failed", "file", saved.Name, "error", err)
		return "", "", apierr.Internal("extract_failed", msgExtractFailed, fmt.Errorf("extract %s: %w", saved.Name, err))
	}
	return saved.Name, text, nil
}

func (s *studyService) generate(ctx context.Context, kind domain.ActivityKind, prompt string) ollama.Result {
	res := s.gateway.Generate(ctx, prompt)
	if res.Failed() {
		s.log.Warn("model generation failed", "kind", kind, "error", res.Err())
	}
	return res
}

func (s *studyService) record(ctx context.Context, in ActivityInput, res ollama.Result) error {
	if res.Failed() {
		if in.Meta == nil {
			in.Meta = map[string]any{}
		}
		in.Meta["modelError"] = true
	}
	if _, err := s.activities.Log(ctx, in); err != nil {
		return apierr.Internal("store_failed", msgStoreFailed, err)
	}
	return nil
}

func (s *studyService) Notes(ctx context.Context, file *multipart.FileHeader, instruction string) (string, error) {
	return s.fromDocument(ctx, domain.ActivityNotes, file, instruction, prompts.DefaultNotesInstruction, prompts.Notes, "Notes from ")
}

func (s *studyService) Questions(ctx context.Context, file *multipart.FileHeader, instruction string) (string, error) {
	return s.fromDocument(ctx, domain.ActivityQuestions, file, instruction, prompts.DefaultQuestionsInstruction, prompts.Questions, "Questions from ")
}

func (s *studyService) fromDocument(
	ctx context.Context,
	kind domain.ActivityKind,
	file *multipart.FileHeader,
	instruction, fallback string,
	build func(instruction, material string) (string, error),
	titlePrefix string,
) (string, error) {
	name, text, err := s.material(file, pdftext.DefaultMaxPages)
	if err != nil {
		return "", err
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		instruction = fallback
	}
	prompt, err := build(instruction, text)
	if err != nil {
		return "", fmt.Errorf("build %s prompt: %w", kind, err)
	}

	res := s.generate(ctx, kind, prompt)
	if err := s.record(ctx, ActivityInput{
		Kind:    kind,
		Title:   titlePrefix + name,
		Details: instruction,
		Meta:    map[string]any{"file": name},
	}, res); err != nil {
		return "", err
	}
	return res.Text(), nil
}

func (s *studyService) Quiz(ctx context.Context, file *multipart.FileHeader, numQuestions string) ([]domain.QuizQuestion, error) {
	n := ParseQuestionCount(numQuestions)
	name, text, err := s.material(file, pdftext.QuizMaxPages)
	if err != nil {
		return nil, err
	}
	prompt, err := prompts.Quiz(n, text)
	if err != nil {
		return nil, fmt.Errorf("build quiz prompt: %w", err)
	}

	res := s.generate(ctx, domain.ActivityQuiz, prompt)
	raw := res.Text()
	questions, outcome, err := ParseQuizOutput(raw)
	if s.quizObs != nil {
		s.quizObs.ObserveQuizParse(outcome)
	}
	if err != nil {
		s.log.Warn("quiz output rejected", "file", name, "outcome", outcome, "raw_len", len(raw))
		return nil, apierr.New(http.StatusInternalServerError, "invalid_quiz_json", errors.New(QuizErrorMessage(raw)))
	}

	if err := s.record(ctx, ActivityInput{
		Kind:  domain.ActivityQuiz,
		Title: fmt.Sprintf("Quiz (%d Qs) from %s", n, name),
		Meta: map[string]any{
			"file":         name,
			"numQuestions": n,
			"parsed":       len(questions),
			"parseOutcome": outcome,
		},
	}, res); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *studyService) Chat(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrMissingQuestion
	}
	prompt, err := prompts.Chat(question)
	if err != nil {
		return "", fmt.Errorf("build chat prompt: %w", err)
	}
	res := s.generate(ctx, domain.ActivityChat, prompt)
	if err := s.record(ctx, ActivityInput{
		Kind:    domain.ActivityChat,
		Title:   "AI Chat question",
		Details: question,
	}, res); err != nil {
		return "", err
	}
	return res.Text(), nil
}

func (s *studyService) Mentor(ctx context.Context, req MentorRequest) (string, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.TotalDays = strings.TrimSpace(req.TotalDays)
	req.HoursPerDay = strings.TrimSpace(req.HoursPerDay)
	req.Level = strings.TrimSpace(req.Level)
	req.Notes = strings.TrimSpace(req.Notes)

	var missing []string
	if req.Subject == "" {
		missing = append(missing, "subject")
	}
	if req.TotalDays == "" {
		missing = append(missing, "totalDays")
	}
	if req.HoursPerDay == "" {
		missing = append(missing, "hoursPerDay")
	}
	if len(missing) > 0 {
		return "", apierr.BadRequest("missing_fields", missingMentorFieldsMsg+" Missing: "+strings.Join(missing, ", ")+".")
	}
	if req.Level == "" {
		req.Level = prompts.DefaultMentorLevel
	}

	prompt, err := prompts.Mentor(prompts.MentorInput{
		Subject:     req.Subject,
		TotalDays:   req.TotalDays,
		HoursPerDay: req.HoursPerDay,
		Level:       req.Level,
		Notes:       req.Notes,
	})
	if err != nil {
		return "", fmt.Errorf("build mentor prompt: %w", err)
	}
	res := s.generate(ctx, domain.ActivityMentor, prompt)
	if err := s.record(ctx, ActivityInput{
		Kind:    domain.ActivityMentor,
		Title:   "Study plan for " + req.Subject,
		Details: req.TotalDays + " days, " + req.HoursPerDay + " h/day",
		Meta: map[string]any{
			"level":       req.Level,
			"totalDays":   numericOrString(req.TotalDays),
			"hoursPerDay": numericOrString(req.HoursPerDay),
		},
	}, res); err != nil {
		return "", err
	}
	return res.Text(), nil
}

func numericOrString(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
