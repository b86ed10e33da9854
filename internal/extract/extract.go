// Package extract pulls structured contact details out of free-text
// candidate replies. Only email and phone are pattern-matched; every other
// profile field is collected verbatim by the conversation flow.
package extract

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)

	// Validators anchor at the start of the input, matching how they were
	// always applied: as optional checks on an already-isolated value.
	emailValidator = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneValidator = regexp.MustCompile(`^(?:\+\d{1,3}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)

	scriptTags = regexp.MustCompile(`(?s)<script.*?>.*?</script>`)
	htmlTags   = regexp.MustCompile(`<.*?>`)
)

// Result holds the values found in a single utterance. Empty string means
// no match.
type Result struct {
	Email string
	Phone string
}

// Extract scans the utterance for an email address and a phone number and
// returns the first match of each. It is pure: callers decide which of the
// returned values are still eligible for collection.
func Extract(utterance string) Result {
	return Result{
		Email: emailPattern.FindString(utterance),
		Phone: phonePattern.FindString(utterance),
	}
}

// ValidateEmail reports whether the value looks like an email address.
// It is an optional check for external callers; collection never rejects
// input based on it.
func ValidateEmail(email string) bool {
	return emailValidator.MatchString(email)
}

// ValidatePhone reports whether the value looks like a phone number with
// optional international prefix and 3-3-4 digit grouping.
func ValidatePhone(phone string) bool {
	return phoneValidator.MatchString(phone)
}

// Sanitize strips script blocks and HTML tags from raw input and trims
// surrounding whitespace.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = scriptTags.ReplaceAllString(text, "")
	text = htmlTags.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
