package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	timeRegex  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// FieldError describes a single failed rule on a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured list of field-level validation failures
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator collects per-field rule failures. Rules are evaluated at the
// request boundary, before the service is invoked.
type Validator struct {
	errs Errors
}

// New creates a new validator
func New() *Validator {
	return &Validator{}
}

// Err returns the collected field errors, or nil if every rule passed
func (v *Validator) Err() Errors {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// Required fails when the trimmed value is empty
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
	return v
}

// Email fails when a non-empty value is not a valid email address
func (v *Validator) Email(field, value string) *Validator {
	if value != "" && !emailRegex.MatchString(value) {
		v.add(field, "must be a valid email address")
	}
	return v
}

// Phone fails when a non-empty value is not a valid international phone number
func (v *Validator) Phone(field, value string) *Validator {
	if value == "" {
		return v
	}
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(value)
	if !phoneRegex.MatchString(cleaned) {
		v.add(field, "must be a valid phone number")
	}
	return v
}

// OneOf fails when a non-empty value is not in the allowed set
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// MinFloat fails when value < min
func (v *Validator) MinFloat(field string, value, min float64) *Validator {
	if value < min {
		v.add(field, fmt.Sprintf("must be at least %g", min))
	}
	return v
}

// Range fails when value is outside [min, max]
func (v *Validator) Range(field string, value, min, max float64) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("must be between %g and %g", min, max))
	}
	return v
}

// MinInt fails when a non-zero value < min
func (v *Validator) MinInt(field string, value, min int) *Validator {
	if value != 0 && value < min {
		v.add(field, fmt.Sprintf("must be at least %d", min))
	}
	return v
}

// MaxLen fails when the value exceeds max characters
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if len(value) > max {
		v.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v
}

// MinLen fails when the value has fewer than min characters
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if len(value) < min {
		v.add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return v
}

// Date fails when a non-empty value is not a YYYY-MM-DD date
func (v *Validator) Date(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		v.add(field, "must be a valid date (YYYY-MM-DD)")
	}
	return v
}

// FutureDate fails unless the date is strictly after now
func (v *Validator) FutureDate(field string, value time.Time) *Validator {
	if !value.After(time.Now()) {
		v.add(field, "must be a future date")
	}
	return v
}

// TimeOfDay fails when a non-empty value is not in HH:MM 24h format
func (v *Validator) TimeOfDay(field, value string) *Validator {
	if value != "" && !timeRegex.MatchString(value) {
		v.add(field, "must be in HH:MM format")
	}
	return v
}
