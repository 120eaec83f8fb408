package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"regform-go/models"
	"regform-go/submission"
	"regform-go/utils"
)

// JSON registrations are a dozen short strings.
const maxBodyBytes = 64 << 10

type formPage struct {
	Values       models.RegisterRequest
	Active       bool
	Errors       map[string]string
	Roles        []models.Option
	Countries    []models.Option
	Submitted    *models.RegistrationRecord
	SubmissionID string
}

func (h *Handlers) newFormPage(req models.RegisterRequest) *formPage {
	req.Password = ""
	return &formPage{
		Values:    req,
		Active:    lo.FromPtrOr(req.Active, true),
		Errors:    map[string]string{},
		Roles:     models.RoleOptions,
		Countries: models.CountryOptions,
	}
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page *formPage) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, page); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render form", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// RegisterForm renders the empty registration form.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.newFormPage(models.RegisterRequest{
		Email: h.config.DefaultEmail,
	}))
}

// SubmitForm validates a form post and re-renders the page with inline errors
// or a confirmation.
func (h *Handlers) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	var req models.RegisterRequest
	if err := h.decoder.Decode(&req, r.PostForm); err != nil {
		h.logger.InfoContext(r.Context(), "form decode failed", "error", err)
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	page := h.newFormPage(req)

	record, err := h.validator.Validate(req)
	if err != nil {
		details := utils.FormatValidationError(err)
		if len(details) == 0 {
			h.logger.ErrorContext(r.Context(), "validation failed unexpectedly", "error", err)
			http.Error(w, "Failed to validate form", http.StatusInternalServerError)
			return
		}
		page.Errors = details
		h.render(w, r, http.StatusUnprocessableEntity, page)
		return
	}

	sub, err := h.submit(r.Context(), record)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "submission failed", "error", err)
		http.Error(w, "Failed to submit registration", http.StatusInternalServerError)
		return
	}

	page.Submitted = record
	page.SubmissionID = sub.ID.String()
	h.render(w, r, http.StatusOK, page)
}

// Register is the JSON counterpart of SubmitForm.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(w, r, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return
		}
		h.sendError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.validator.Validate(req)
	if err != nil {
		details := utils.FormatValidationError(err)
		if len(details) == 0 {
			h.logger.ErrorContext(r.Context(), "validation failed unexpectedly", "error", err)
			h.sendError(w, r, http.StatusInternalServerError, "Failed to validate request", nil)
			return
		}
		h.sendError(w, r, http.StatusBadRequest, "Validation failed", details)
		return
	}

	sub, err := h.submit(r.Context(), record)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "submission failed", "error", err)
		h.sendError(w, r, http.StatusInternalServerError, "Failed to submit registration", nil)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, models.RegisterResponse{
		Message:      "Registration submitted successfully",
		SubmissionID: sub.ID,
		Record:       record,
	})
}

func (h *Handlers) submit(ctx context.Context, record *models.RegistrationRecord) (*models.Submission, error) {
	sub, err := submission.New(record, h.config.BcryptCost)
	if err != nil {
		return nil, err
	}
	if err := h.submitter.Submit(ctx, sub); err != nil {
		return nil, fmt.Errorf("submit %s: %w", sub.ID, err)
	}
	return sub, nil
}
