package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	phoneRe   = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	panRe     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

const MinPasswordLength = 6

// ValidPhone accepts ten digit Indian mobile numbers.
func ValidPhone(s string) bool { return phoneRe.MatchString(strings.TrimSpace(s)) }

func ValidEmail(s string) bool { return emailRe.MatchString(strings.TrimSpace(s)) }

func ValidPassword(s string) bool { return len(s) >= MinPasswordLength }

func ValidPAN(s string) bool { return panRe.MatchString(strings.ToUpper(strings.TrimSpace(s))) }

func ValidPincode(s string) bool { return pincodeRe.MatchString(strings.TrimSpace(s)) }

type FieldError struct {
	Step    string `json:"step,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when submitted values fail synchronous checks.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(step, field, msg string) {
	e.Fields = append(e.Fields, FieldError{Step: step, Field: field, Message: msg})
}

// Err returns nil when no field failed.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateStep checks one step's values against the schema.
func (s Schema) ValidateStep(step string, vals Values) error {
	st, ok := s.Step(step)
	if !ok {
		return fmt.Errorf("%s has no step %q", s.Kind, step)
	}
	verr := &ValidationError{}
	for _, f := range st.Fields {
		checkField(verr, step, f, vals[f.Name])
	}
	return verr.Err()
}

// Validate checks every step.
func (s Schema) Validate(steps Steps) error {
	verr := &ValidationError{}
	for _, st := range s.Steps {
		vals := steps[st.Name]
		for _, f := range st.Fields {
			checkField(verr, st.Name, f, vals[f.Name])
		}
	}
	return verr.Err()
}

// ValidateValues checks only the fields present, ignoring required markers.
// The API uses it for partial draft saves.
func (s Schema) ValidateValues(flat map[string]any) error {
	verr := &ValidationError{}
	for name, v := range flat {
		step, f, ok := s.Field(name)
		if !ok {
			continue
		}
		f.Required = false
		checkField(verr, step, f, v)
	}
	return verr.Err()
}

func checkField(verr *ValidationError, step string, f Field, v any) {
	str, present := asString(v)
	if !present {
		if f.Required {
			verr.Add(step, f.Name, "is required")
		}
		return
	}
	switch f.Type {
	case Email:
		if !ValidEmail(str) {
			verr.Add(step, f.Name, "must be a valid email address")
		}
	case Phone:
		if !ValidPhone(str) {
			verr.Add(step, f.Name, "must be a 10 digit mobile number")
		}
	case PAN:
		if !ValidPAN(str) {
			verr.Add(step, f.Name, "must be a valid PAN")
		}
	case Pincode:
		if !ValidPincode(str) {
			verr.Add(step, f.Name, "must be a 6 digit pincode")
		}
	case Date:
		if _, err := time.Parse("2006-01-02", str); err != nil {
			verr.Add(step, f.Name, "must be a date (YYYY-MM-DD)")
		}
	case Number:
		if _, err := strconv.ParseFloat(str, 64); err != nil {
			verr.Add(step, f.Name, "must be a number")
		}
	}
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}
