package validation

import (
	"regexp"
	"strings"
)

// FieldKind identifies which pattern a form field is checked against.
type FieldKind string

const (
	FieldFirstName FieldKind = "fname"
	FieldLastName  FieldKind = "lname"
	FieldEmail     FieldKind = "email"
	FieldPhone     FieldKind = "phone"
	FieldMessage   FieldKind = "message"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
)

const (
	DefectName  = "Should contain alphabetic characters only."
	DefectEmail = "Please enter a valid email address."
	DefectPhone = "Please enter a valid phone number."
)

// Validate classifies value against the pattern for kind. An empty string
// means the value is valid. Message fields carry no constraint.
func Validate(kind FieldKind, value string) string {
	switch kind {
	case FieldFirstName, FieldLastName:
		if !namePattern.MatchString(value) {
			return DefectName
		}
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return DefectEmail
		}
	case FieldPhone:
		if !phonePattern.MatchString(value) {
			return DefectPhone
		}
	}
	return ""
}

var requiredLabels = []struct {
	kind  FieldKind
	label string
}{
	{FieldFirstName, "first name"},
	{FieldLastName, "last name"},
	{FieldEmail, "email address"},
	{FieldPhone, "phone number"},
}

// CheckRequired is the submit-time pass: every required field that is empty
// gets its own defect, which supersedes any pattern defect for that field.
func CheckRequired(form map[FieldKind]string) map[string]string {
	defects := make(map[string]string)
	for _, req := range requiredLabels {
		if strings.TrimSpace(form[req.kind]) == "" {
			defects[string(req.kind)] = "Please enter your " + req.label + "."
		}
	}
	return defects
}

// ValidateForm runs the required pass first, then pattern validation on the
// remaining non-empty fields. An empty map means the form may be submitted.
func ValidateForm(form map[FieldKind]string) map[string]string {
	defects := CheckRequired(form)
	for kind, value := range form {
		if _, superseded := defects[string(kind)]; superseded {
			continue
		}
		if value == "" {
			continue
		}
		if d := Validate(kind, value); d != "" {
			defects[string(kind)] = d
		}
	}
	return defects
}
