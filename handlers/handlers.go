package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"regform-go/config"
	"regform-go/models"
	"regform-go/submission"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrorResponse represents a standardized error response
// Status: HTTP status code
// Error: Error message
// Details: Additional details about the error
// Timestamp: When the error occurred
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Details   any       `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handlers) sendError(w http.ResponseWriter, r *http.Request, status int, err string, details any) {
	h.writeJSON(w, r, status, ErrorResponse{
		Status:    status,
		Error:     err,
		Details:   details,
		Timestamp: time.Now(),
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write response", "error", err)
	}
}

// FormValidator turns a candidate registration into a record or a ValidationErrors.
type FormValidator interface {
	Validate(req models.RegisterRequest) (*models.RegistrationRecord, error)
}

type Handlers struct {
	validator FormValidator
	submitter submission.Submitter
	config    *config.Config
	logger    *slog.Logger
	decoder   *schema.Decoder
	page      *template.Template
}

func NewHandlers(v FormValidator, s submission.Submitter, cfg *config.Config, logger *slog.Logger) (*Handlers, error) {
	page, err := template.ParseFS(templateFS, "templates/form.html")
	if err != nil {
		return nil, err
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handlers{
		validator: v,
		submitter: s,
		config:    cfg,
		logger:    logger,
		decoder:   decoder,
		page:      page,
	}, nil
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "RegForm",
		"version":   "1.0.0",
	})
}

// Options lists the values accepted by the role and country selects.
func (h *Handlers) Options(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, models.OptionsResponse{
		Roles:     models.RoleOptions,
		Countries: models.CountryOptions,
	})
}

// MethodNotAllowed answers OPTIONS requests that are not CORS preflights.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
}
