package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/dtos"
	"github.com/justsurfingit/jobboard/internal/form"
	"github.com/justsurfingit/jobboard/internal/wizard"
	"github.com/rs/zerolog"
)

// Resume formats accepted on the upload step.
var resumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/rtf",
	"text/plain",
}

type SignupHandler struct {
	Sessions       *Sessions
	MaxResumeBytes int64
	SecureCookies  bool
	Log            zerolog.Logger
}

func NewSignupHandler(sessions *Sessions, maxResumeBytes int64, secureCookies bool, log zerolog.Logger) *SignupHandler {
	return &SignupHandler{
		Sessions:       sessions,
		MaxResumeBytes: maxResumeBytes,
		SecureCookies:  secureCookies,
		Log:            log,
	}
}

// Register mounts the signup routes on r.
func (h *SignupHandler) Register(r gin.IRoutes) {
	r.GET("/signup", h.Load)
	r.GET("/signup/state", h.State)
	r.PATCH("/signup/fields", h.UpdateField)
	r.DELETE("/signup/errors/:field", h.ClearError)
	r.POST("/signup/resume", h.UploadResume)
	r.DELETE("/signup/resume", h.RemoveResume)
	r.POST("/signup/next", h.Next)
	r.POST("/signup/back", h.Back)
	r.POST("/signup/skip", h.Skip)
	r.DELETE("/signup", h.Reset)
}

// Load is the GET /signup endpoint. It starts the wizard as on a page load,
// restoring any snapshot the tab session still has.
func (h *SignupHandler) Load(c *gin.Context) {
	id := sessionID(c, h.SecureCookies)
	var view wizard.View
	h.Sessions.Mount(c.Request.Context(), id, func(ctrl *wizard.Controller) {
		view = ctrl.View()
	})
	c.JSON(http.StatusOK, view)
}

// State returns the current view without restoring again.
func (h *SignupHandler) State(c *gin.Context) {
	h.run(c, func(*wizard.Controller) error { return nil })
}

func (h *SignupHandler) UpdateField(c *gin.Context) {
	var req dtos.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if !form.IsKnown(req.Field) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown field %q", req.Field)})
		return
	}
	if req.Field == form.FieldResume {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload the resume with POST /signup/resume"})
		return
	}
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.FieldChange(c.Request.Context(), req.Field, req.Value)
	})
}

func (h *SignupHandler) ClearError(c *gin.Context) {
	field := c.Param("field")
	h.run(c, func(ctrl *wizard.Controller) error {
		ctrl.ClearError(c.Request.Context(), field)
		return nil
	})
}

// UploadResume is the POST /signup/resume endpoint. The file is kept in
// memory with the wizard; only its metadata is ever persisted.
func (h *SignupHandler) UploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxResumeBytes+1<<20)
	header, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("resume exceeds %d bytes", h.MaxResumeBytes)})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing resume file: " + err.Error()})
		return
	}
	if header.Size > h.MaxResumeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("resume exceeds %d bytes", h.MaxResumeBytes)})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable resume file: " + err.Error()})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, h.MaxResumeBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable resume file: " + err.Error()})
		return
	}
	if int64(len(content)) > h.MaxResumeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("resume exceeds %d bytes", h.MaxResumeBytes)})
		return
	}

	mtype := mimetype.Detect(content)
	if !mimetype.EqualsAny(mtype.String(), resumeTypes...) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": fmt.Sprintf("unsupported resume type %s", mtype.String())})
		return
	}

	file := &form.File{
		Name:      filepath.Base(header.Filename),
		Size:      int64(len(content)),
		MediaType: mtype.String(),
		Content:   content,
	}
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.FieldChange(c.Request.Context(), form.FieldResume, file)
	})
}

func (h *SignupHandler) RemoveResume(c *gin.Context) {
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.FieldChange(c.Request.Context(), form.FieldResume, nil)
	})
}

func (h *SignupHandler) Next(c *gin.Context) {
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.Next(c.Request.Context())
	})
}

func (h *SignupHandler) Back(c *gin.Context) {
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.Back(c.Request.Context())
	})
}

func (h *SignupHandler) Skip(c *gin.Context) {
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.Skip(c.Request.Context())
	})
}

// Reset is the DELETE /signup endpoint.
func (h *SignupHandler) Reset(c *gin.Context) {
	h.run(c, func(ctrl *wizard.Controller) error {
		ctrl.Reset(c.Request.Context())
		return nil
	})
}

// run applies fn to the session's controller and responds with the view
// after it, or with the error and that view.
func (h *SignupHandler) run(c *gin.Context, fn func(*wizard.Controller) error) {
	id := sessionID(c, h.SecureCookies)
	var (
		view wizard.View
		err  error
	)
	h.Sessions.Do(c.Request.Context(), id, func(ctrl *wizard.Controller) {
		err = fn(ctrl)
		view = ctrl.View()
	})
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.Log.Error().Err(err).Str("session", id).Msg("signup action failed")
		}
		_ = c.Error(err)
		c.JSON(status, dtos.SignupResponse{Error: err.Error(), State: view})
		return
	}
	c.JSON(http.StatusOK, view)
}

func statusFor(err error) int {
	var fieldErr *wizard.FieldError
	switch {
	case errors.Is(err, wizard.ErrValidationFailed), errors.As(err, &fieldErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrStepNotSkippable), errors.Is(err, wizard.ErrAlreadyComplete):
		return http.StatusConflict
	case errors.Is(err, wizard.ErrSubmissionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
