package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"regform-go/models"
)

var phoneRegex = regexp.MustCompile(`^\d{10,}$`)

const minMobileLength = 10

// ErrTranslatorNotFound is returned when the English translator cannot be created.
var ErrTranslatorNotFound = errors.New("translator not found")

// ValidationErrors maps a field name to the first message that field failed with.
type ValidationErrors map[string]string

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	b, err := json.Marshal(map[string]string(ve))
	if err != nil {
		return fmt.Sprintf("validation failed (failed to marshal: %v)", err)
	}
	return "validation failed: " + string(b)
}

// Validator checks registration requests against the form schema.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator builds a Validator with English messages and the custom form rules.
func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	if err := registerFormRules(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: trans,
	}, nil
}

// Validate checks every field of req independently. On success it returns the
// record with defaults applied; otherwise the error is a ValidationErrors.
func (v *Validator) Validate(req models.RegisterRequest) (*models.RegistrationRecord, error) {
	if err := v.ValidateStruct(req); err != nil {
		return nil, err
	}
	return models.NewRegistrationRecord(req), nil
}

// ValidateStruct validates any tagged struct and translates the failures.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = fe.Translate(v.translator)
	}
	return errs
}

// FormatValidationError returns the field messages carried by err, or an empty map.
func FormatValidationError(err error) map[string]string {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return map[string]string{}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(fld.Name)
	}
	return name
}

type formRule struct {
	tag     string
	fn      validator.Func
	message string
	params  func(fe validator.FieldError) []string
}

func fieldParam(fe validator.FieldError) []string { return []string{fe.Field()} }
func tagParam(fe validator.FieldError) []string   { return []string{fe.Param()} }

var formRules = []formRule{
	{tag: "fullname", fn: matchFunc(isFullName), message: "Enter your full name"},
	{tag: "phonedigits", fn: matchFunc(phoneRegex.MatchString), message: "Invalid phone number"},
	{tag: "mobile", fn: matchFunc(isMobile), message: "Required"},
	{tag: "role", fn: matchFunc(func(s string) bool { return models.Role(s).Valid() }), message: "Please select a {0}.", params: fieldParam},
	{tag: "country", fn: matchFunc(func(s string) bool { return models.Country(s).Valid() }), message: "Please select a {0}.", params: fieldParam},
	{tag: "required", message: "Required"},
	{tag: "email", message: "Invalid email"},
	{tag: "min", message: "Must contain at least {0} character(s)", params: tagParam},
}

// isFullName accepts "first last": exactly one ASCII space between two runs
// free of any Unicode whitespace.
func isFullName(s string) bool {
	first, last, ok := strings.Cut(s, " ")
	if !ok || first == "" || last == "" {
		return false
	}
	return !strings.ContainsFunc(first, isBlank) && !strings.ContainsFunc(last, isBlank)
}

// U+FEFF is not White_Space in Unicode but counts as whitespace in browser regexps.
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Mobile numbers are free-form; only their length is checked.
func isMobile(s string) bool {
	return utf8.RuneCountInString(s) >= minMobileLength
}

func matchFunc(match func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return match(field.String())
	}
}

func registerFormRules(validate *validator.Validate, trans ut.Translator) error {
	for _, rule := range formRules {
		if rule.fn != nil {
			if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
				return fmt.Errorf("register rule %q: %w", rule.tag, err)
			}
		}

		err := validate.RegisterTranslation(rule.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(rule.tag, rule.message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				var params []string
				if rule.params != nil {
					params = rule.params(fe)
				}
				t, err := ut.T(fe.Tag(), params...)
				if err != nil {
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return fmt.Errorf("register message %q: %w", rule.tag, err)
		}
	}
	return nil
}
