// Package validation holds the content rules shared by thread and reply
// submission paths.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	internal_errors "github.com/waypost-dev/waypost/internal/errors"
	"github.com/waypost-dev/waypost/internal/mention"
)

const SubjectMaxLen = 60

// Matches scheme+host, www-prefixed hosts and bare host-like tokens
// (label dot letters-only TLD), case-insensitive.
var urlPattern = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+|\b(?:[a-z0-9][a-z0-9-]*\.)+[a-z]{2,}\b`)

type Content struct{}

func (Content) Subject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return &internal_errors.ValidationError{
			Field:   "subject",
			Code:    internal_errors.CodeEmpty,
			Message: "subject can not be empty",
		}
	}
	if utf8.RuneCountInString(subject) > SubjectMaxLen {
		return &internal_errors.ValidationError{
			Field:   "subject",
			Code:    internal_errors.CodeTooLong,
			Message: fmt.Sprintf("subject can not be longer than %d characters", SubjectMaxLen),
		}
	}
	if urlPattern.MatchString(subject) {
		return &internal_errors.ValidationError{
			Field:   "subject",
			Code:    internal_errors.CodeContainsUrl,
			Message: "subject can not contain an url",
		}
	}
	return nil
}

func (Content) Body(body string) error {
	if strings.TrimSpace(body) == "" {
		return &internal_errors.ValidationError{
			Field:   "body",
			Code:    internal_errors.CodeEmpty,
			Message: "body can not be empty",
		}
	}
	// A mention dressed up as a link is rejected outright rather than
	// silently ignored, so spoofed mentions never reach readers.
	if disguised := mention.FindDisguised(body); len(disguised) > 0 {
		return &internal_errors.ValidationError{
			Field:   "body",
			Code:    internal_errors.CodeInvalidMention,
			Message: fmt.Sprintf("body contains an invalid mention: @%s", disguised[0]),
		}
	}
	return nil
}
