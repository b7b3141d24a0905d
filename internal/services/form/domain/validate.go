// Package domain holds the submission validation rules.
package domain

import "strings"

// Age bounds accepted by the age rule, inclusive.
const (
	MinAge = 1
	MaxAge = 150
)

// Rule names one validation rule. The zero value means no rule failed.
type Rule string

const (
	RuleNone              Rule = ""
	RuleFirstNameRequired Rule = "first_name_required"
	RuleLastNameRequired  Rule = "last_name_required"
	RuleAgeOutOfRange     Rule = "age_out_of_range"
	RuleEmailInvalid      Rule = "email_invalid"
)

var ruleMessages = map[Rule]string{
	RuleFirstNameRequired: "first name is required",
	RuleLastNameRequired:  "last name is required",
	RuleAgeOutOfRange:     "age must be between 1 and 150",
	RuleEmailInvalid:      "email is not valid",
}

// Message returns the English text reported for the rule.
func (r Rule) Message() string {
	return ruleMessages[r]
}

// MessageKey returns the catalog key for the rule's localized message.
func (r Rule) MessageKey() string {
	if r == RuleNone {
		return ""
	}
	return "form." + string(r)
}

// Submission is one form submission as received from a caller.
type Submission struct {
	FirstName string
	LastName  string
	Age       int32
	Email     string
}

// Result is the outcome of Validate.
type Result struct {
	// Submission is the normalized submission; only meaningful when OK.
	Submission Submission
	// Rule is the first rule that failed.
	Rule Rule
}

// OK reports whether every rule passed.
func (r Result) OK() bool {
	return r.Rule == RuleNone
}

// Validate checks the rules in order and stops at the first failure.
// Names are trimmed in the normalized submission; the email is kept as sent.
func Validate(in Submission) Result {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return Result{Rule: RuleFirstNameRequired}
	}
	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		return Result{Rule: RuleLastNameRequired}
	}
	if in.Age < MinAge || in.Age > MaxAge {
		return Result{Rule: RuleAgeOutOfRange}
	}
	// Only the presence of "@" is checked.
	if !strings.Contains(in.Email, "@") {
		return Result{Rule: RuleEmailInvalid}
	}
	return Result{Submission: Submission{
		FirstName: firstName,
		LastName:  lastName,
		Age:       in.Age,
		Email:     in.Email,
	}}
}
