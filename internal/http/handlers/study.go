package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prepgenius-backend/internal/http/response"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
	"github.com/yungbote/prepgenius-backend/internal/services"
)

type StudyHandler struct {
	log   *logger.Logger
	study services.StudyService
}

func NewStudyHandler(log *logger.Logger, study services.StudyService) *StudyHandler {
	return &StudyHandler{log: log.With("handler", "StudyHandler"), study: study}
}

// POST /api/notes  (multipart: file, prompt?)
func (h *StudyHandler) Notes(c *gin.Context) {
	file, ok := h.formFile(c)
	if !ok {
		return
	}
	notes, err := h.study.Notes(c.Request.Context(), file, c.PostForm("prompt"))
	if err != nil {
		h.fail(c, err, "notes_failed")
		return
	}
	response.RespondOK(c, gin.H{"notes": notes})
}

// POST /api/quiz  (multipart: file, numQuestions?)
func (h *StudyHandler) Quiz(c *gin.Context) {
	file, ok := h.formFile(c)
	if !ok {
		return
	}
	questions, err := h.study.Quiz(c.Request.Context(), file, c.PostForm("numQuestions"))
	if err != nil {
		h.fail(c, err, "quiz_failed")
		return
	}
	response.RespondOK(c, gin.H{"questions": questions})
}

// POST /api/questions  (multipart: file, prompt?)
func (h *StudyHandler) Questions(c *gin.Context) {
	file, ok := h.formFile(c)
	if !ok {
		return
	}
	questions, err := h.study.Questions(c.Request.Context(), file, c.PostForm("prompt"))
	if err != nil {
		h.fail(c, err, "questions_failed")
		return
	}
	response.RespondOK(c, gin.H{"questions": questions})
}

type chatReq struct {
	Question string `json:"question"`
}

// POST /api/chat
func (h *StudyHandler) Chat(c *gin.Context) {
	var req chatReq
	if !h.bindJSON(c, &req) {
		return
	}
	answer, err := h.study.Chat(c.Request.Context(), req.Question)
	if err != nil {
		h.fail(c, err, "chat_failed")
		return
	}
	response.RespondOK(c, gin.H{"answer": answer})
}

type mentorReq struct {
	Subject     flexString `json:"subject"`
	TotalDays   flexString `json:"totalDays"`
	HoursPerDay flexString `json:"hoursPerDay"`
	Level       flexString `json:"level"`
	Notes       flexString `json:"notes"`
}

// POST /api/mentor
func (h *StudyHandler) Mentor(c *gin.Context) {
	var req mentorReq
	if !h.bindJSON(c, &req) {
		return
	}
	plan, err := h.study.Mentor(c.Request.Context(), services.MentorRequest{
		Subject:     string(req.Subject),
		TotalDays:   string(req.TotalDays),
		HoursPerDay: string(req.HoursPerDay),
		Level:       string(req.Level),
		Notes:       string(req.Notes),
	})
	if err != nil {
		h.fail(c, err, "mentor_failed")
		return
	}
	response.RespondOK(c, gin.H{"plan": plan})
}

// formFile returns the uploaded "file" part, or nil when the request has none.
// It only fails the request when the body exceeded the upload limit.
func (h *StudyHandler) formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large",
				fmt.Errorf("upload exceeds %d bytes", tooBig.Limit))
			return nil, false
		}
		return nil, true
	}
	if strings.TrimSpace(fh.Filename) == "" {
		return nil, true
	}
	return fh, true
}

func (h *StudyHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "body_too_large", err)
			return false
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

func (h *StudyHandler) fail(c *gin.Context, err error, fallbackCode string) {
	status := response.RespondAPIError(c, err, fallbackCode)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		h.log.Error("study request failed", "path", c.FullPath(), "status", status, "error", err)
	}
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = flexString(n.String())
	return nil
}
