package utils_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regform-go/models"
	"regform-go/utils"
)

func validRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     "John Smith",
		Email:    "john@example.com",
		Password: "secret1",
		Mobile:   "5551234567",
		Address:  "123 Main Street",
		City:     "Springfield",
		State:    "Illinois",
		Zipcode:  "62701",
		Country:  models.CountryAmerica,
		Role:     models.RoleDriver,
	}
}

func newValidator(t *testing.T) *utils.Validator {
	t.Helper()
	v, err := utils.NewValidator()
	require.NoError(t, err)
	return v
}

func TestValidate_ValidRequest(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	record, err := v.Validate(validRequest())
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "John Smith", record.Name)
	assert.Equal(t, "secret1", record.Password)
	assert.Equal(t, models.RoleDriver, record.Role)
	assert.True(t, record.Active, "active defaults to true when unset")
}

func TestValidate_ActiveExplicitFalse(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	req := validRequest()
	req.Active = lo.ToPtr(false)

	record, err := v.Validate(req)
	require.NoError(t, err)
	assert.False(t, record.Active)
}

func TestValidate_FieldRules(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	tests := []struct {
		name    string
		modify  func(r *models.RegisterRequest)
		field   string
		message string
	}{
		{
			name:    "name without a space",
			modify:  func(r *models.RegisterRequest) { r.Name = "John" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name with two spaces",
			modify:  func(r *models.RegisterRequest) { r.Name = "John  Smith" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name with three words",
			modify:  func(r *models.RegisterRequest) { r.Name = "John Paul Smith" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name with leading space",
			modify:  func(r *models.RegisterRequest) { r.Name = " John" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name joined by no-break space",
			modify:  func(r *models.RegisterRequest) { r.Name = "John\u00a0Paul Smith" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name joined by em space",
			modify:  func(r *models.RegisterRequest) { r.Name = "John\u2003Paul Smith" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name joined by vertical tab",
			modify:  func(r *models.RegisterRequest) { r.Name = "John\vPaul Smith" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name joined by byte order mark",
			modify:  func(r *models.RegisterRequest) { r.Name = "John\ufeffPaul Smith" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "name separated only by no-break space",
			modify:  func(r *models.RegisterRequest) { r.Name = "John\u00a0Smith" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "empty name",
			modify:  func(r *models.RegisterRequest) { r.Name = "" },
			field:   "name",
			message: "Enter your full name",
		},
		{
			name:    "invalid email",
			modify:  func(r *models.RegisterRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "Invalid email",
		},
		{
			name:    "empty email",
			modify:  func(r *models.RegisterRequest) { r.Email = "" },
			field:   "email",
			message: "Invalid email",
		},
		{
			name:    "short password",
			modify:  func(r *models.RegisterRequest) { r.Password = "12345" },
			field:   "password",
			message: "Must contain at least 6 character(s)",
		},
		{
			name:    "empty mobile",
			modify:  func(r *models.RegisterRequest) { r.Mobile = "" },
			field:   "mobile",
			message: "Required",
		},
		{
			name:    "short mobile",
			modify:  func(r *models.RegisterRequest) { r.Mobile = "555123456" },
			field:   "mobile",
			message: "Required",
		},
		{
			name:    "phone with letters",
			modify:  func(r *models.RegisterRequest) { r.Phone = "555abc4567" },
			field:   "phone",
			message: "Invalid phone number",
		},
		{
			name:    "short phone",
			modify:  func(r *models.RegisterRequest) { r.Phone = "123456789" },
			field:   "phone",
			message: "Invalid phone number",
		},
		{
			name:    "phone with plus sign",
			modify:  func(r *models.RegisterRequest) { r.Phone = "+1234567890" },
			field:   "phone",
			message: "Invalid phone number",
		},
		{
			name:    "empty address",
			modify:  func(r *models.RegisterRequest) { r.Address = "" },
			field:   "address",
			message: "Required",
		},
		{
			name:    "empty city",
			modify:  func(r *models.RegisterRequest) { r.City = "" },
			field:   "city",
			message: "Required",
		},
		{
			name:    "empty state",
			modify:  func(r *models.RegisterRequest) { r.State = "" },
			field:   "state",
			message: "Required",
		},
		{
			name:    "short zipcode",
			modify:  func(r *models.RegisterRequest) { r.Zipcode = "123" },
			field:   "zipcode",
			message: "Must contain at least 4 character(s)",
		},
		{
			name:    "unknown country",
			modify:  func(r *models.RegisterRequest) { r.Country = "canada" },
			field:   "country",
			message: "Please select a country.",
		},
		{
			name:    "missing country",
			modify:  func(r *models.RegisterRequest) { r.Country = "" },
			field:   "country",
			message: "Please select a country.",
		},
		{
			name:    "unknown role",
			modify:  func(r *models.RegisterRequest) { r.Role = "superuser" },
			field:   "role",
			message: "Please select a role.",
		},
		{
			name:    "missing role",
			modify:  func(r *models.RegisterRequest) { r.Role = "" },
			field:   "role",
			message: "Please select a role.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.modify(&req)

			record, err := v.Validate(req)
			require.Error(t, err)
			assert.Nil(t, record)

			var ve utils.ValidationErrors
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, map[string]string{tt.field: tt.message}, map[string]string(ve))
		})
	}
}

func TestValidate_MobileAcceptsAnyContent(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	for _, mobile := range []string{"5551234567", "+1 555-123-4567", "abcdefghij"} {
		req := validRequest()
		req.Mobile = mobile

		_, err := v.Validate(req)
		assert.NoError(t, err, "mobile %q", mobile)
	}
}

func TestValidate_NonASCIINames(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	for _, name := range []string{"José Álvarez", "Zoë O'Brien", "李 雷"} {
		req := validRequest()
		req.Name = name

		_, err := v.Validate(req)
		assert.NoError(t, err, "name %q", name)
	}
}

func TestValidate_AcceptsEveryListedOption(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	for _, o := range models.RoleOptions {
		req := validRequest()
		req.Role = models.Role(o.Value)
		_, err := v.Validate(req)
		assert.NoError(t, err, "role %q", o.Value)
	}
	for _, o := range models.CountryOptions {
		req := validRequest()
		req.Country = models.Country(o.Value)
		_, err := v.Validate(req)
		assert.NoError(t, err, "country %q", o.Value)
	}
}

func TestValidate_OptionalPhone(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	for _, phone := range []string{"", "1234567890", "123456789012345"} {
		req := validRequest()
		req.Phone = phone

		record, err := v.Validate(req)
		require.NoError(t, err, "phone %q", phone)
		assert.Equal(t, phone, record.Phone)
	}
}

func TestValidate_LengthsCountCharacters(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	req := validRequest()
	req.Password = "пароль" // six characters, twelve bytes

	_, err := v.Validate(req)
	assert.NoError(t, err)

	req.Password = "парол"
	_, err = v.Validate(req)
	assert.Equal(t, "Must contain at least 6 character(s)", utils.FormatValidationError(err)["password"])
}

func TestValidate_EveryFieldReported(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	_, err := v.Validate(models.RegisterRequest{})
	require.Error(t, err)

	got := utils.FormatValidationError(err)
	assert.Equal(t, map[string]string{
		"name":     "Enter your full name",
		"email":    "Invalid email",
		"password": "Must contain at least 6 character(s)",
		"mobile":   "Required",
		"address":  "Required",
		"city":     "Required",
		"state":    "Required",
		"zipcode":  "Must contain at least 4 character(s)",
		"country":  "Please select a country.",
		"role":     "Please select a role.",
	}, got)
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation failed", utils.ValidationErrors{}.Error())

	msg := utils.ValidationErrors{"role": "Please select a role."}.Error()
	assert.True(t, strings.HasPrefix(msg, "validation failed: "))
	assert.Contains(t, msg, `"role":"Please select a role."`)
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, utils.FormatValidationError(errors.New("boom")))
	assert.Empty(t, utils.FormatValidationError(nil))
}
