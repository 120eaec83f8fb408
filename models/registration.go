package models

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleAgent     Role = "agent"
	RoleDriver    Role = "driver"
	RoleAffiliate Role = "affiliate"
	RolePassenger Role = "passenger"
)

type Country string

const (
	CountryIndia    Country = "india"
	CountryPakistan Country = "pakistan"
	CountryAmerica  Country = "america"
)

// Option is a value/label pair rendered in a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RoleOptions lists the selectable roles in display order.
var RoleOptions = []Option{
	{Value: string(RoleAdmin), Label: "Admin"},
	{Value: string(RoleManager), Label: "Manager"},
	{Value: string(RoleAgent), Label: "Agent"},
	{Value: string(RoleDriver), Label: "Driver"},
	{Value: string(RoleAffiliate), Label: "Affiliate"},
	{Value: string(RolePassenger), Label: "Passenger"},
}

// CountryOptions lists the selectable countries in display order.
var CountryOptions = []Option{
	{Value: string(CountryPakistan), Label: "Pakistan"},
	{Value: string(CountryIndia), Label: "India"},
	{Value: string(CountryAmerica), Label: "America"},
}

func (r Role) Valid() bool {
	return lo.ContainsBy(RoleOptions, func(o Option) bool { return o.Value == string(r) })
}

func (c Country) Valid() bool {
	return lo.ContainsBy(CountryOptions, func(o Option) bool { return o.Value == string(c) })
}

// Label returns the display label for the role, or the raw value when unknown.
func (r Role) Label() string {
	if o, ok := lo.Find(RoleOptions, func(o Option) bool { return o.Value == string(r) }); ok {
		return o.Label
	}
	return string(r)
}

// Label returns the display label for the country, or the raw value when unknown.
func (c Country) Label() string {
	if o, ok := lo.Find(CountryOptions, func(o Option) bool { return o.Value == string(c) }); ok {
		return o.Label
	}
	return string(c)
}

// RegisterRequest is the candidate registration as submitted by the form or the JSON API.
// Active is a pointer so an unset value can default to true.
type RegisterRequest struct {
	Name     string  `json:"name" schema:"name" validate:"fullname"`
	Email    string  `json:"email" schema:"email" validate:"email"`
	Password string  `json:"password" schema:"password" validate:"min=6"`
	Mobile   string  `json:"mobile" schema:"mobile" validate:"mobile"`
	Phone    string  `json:"phone,omitempty" schema:"phone" validate:"omitempty,phonedigits"`
	Address  string  `json:"address" schema:"address" validate:"required"`
	City     string  `json:"city" schema:"city" validate:"required"`
	State    string  `json:"state" schema:"state" validate:"required"`
	Zipcode  string  `json:"zipcode" schema:"zipcode" validate:"min=4"`
	Country  Country `json:"country" schema:"country" validate:"country"`
	Role     Role    `json:"role" schema:"role" validate:"role"`
	Active   *bool   `json:"active,omitempty" schema:"active"`
}

// RegistrationRecord is a registration that passed validation.
type RegistrationRecord struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"-"`
	Mobile   string  `json:"mobile"`
	Phone    string  `json:"phone,omitempty"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Zipcode  string  `json:"zipcode"`
	Country  Country `json:"country"`
	Role     Role    `json:"role"`
	Active   bool    `json:"active"`
}

// NewRegistrationRecord copies the request into a record, defaulting Active to true.
func NewRegistrationRecord(req RegisterRequest) *RegistrationRecord {
	return &RegistrationRecord{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Zipcode:  req.Zipcode,
		Country:  req.Country,
		Role:     req.Role,
		Active:   lo.FromPtrOr(req.Active, true),
	}
}

func (r *RegistrationRecord) FirstName() string {
	first, _, _ := strings.Cut(r.Name, " ")
	return first
}

func (r *RegistrationRecord) LastName() string {
	_, last, _ := strings.Cut(r.Name, " ")
	return last
}

// LogValue implements slog.LogValuer. The password is never included.
func (r *RegistrationRecord) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", r.Name),
		slog.String("email", r.Email),
		slog.String("mobile", r.Mobile),
		slog.String("address", r.Address),
		slog.String("city", r.City),
		slog.String("state", r.State),
		slog.String("zipcode", r.Zipcode),
		slog.String("country", string(r.Country)),
		slog.String("role", string(r.Role)),
		slog.Bool("active", r.Active),
	}
	if r.Phone != "" {
		attrs = append(attrs, slog.String("phone", r.Phone))
	}
	return slog.GroupValue(attrs...)
}

// Submission is the payload handed to a Submitter once a record is valid.
type Submission struct {
	ID           uuid.UUID           `json:"id"`
	Record       *RegistrationRecord `json:"record"`
	PasswordHash string              `json:"-"`
	SubmittedAt  time.Time           `json:"submitted_at"`
}

type RegisterResponse struct {
	Message      string              `json:"message"`
	SubmissionID uuid.UUID           `json:"submission_id"`
	Record       *RegistrationRecord `json:"record"`
}

type OptionsResponse struct {
	Roles     []Option `json:"roles"`
	Countries []Option `json:"countries"`
}
