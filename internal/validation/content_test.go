package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/waypost-dev/waypost/internal/errors"
)

func requireValidationCode(t *testing.T, err error, code internal_errors.ValidationCode) {
	t.Helper()
	require.Error(t, err)
	var validationErr *internal_errors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, code, validationErr.Code)
}

func TestSubject(t *testing.T) {
	v := Content{}

	t.Run("valid subjects", func(t *testing.T) {
		for _, subject := range []string{
			"How do I configure queues?",
			"Mr. Smith asked a question",
			strings.Repeat("a", SubjectMaxLen),
		} {
			assert.NoError(t, v.Subject(subject), "subject: %s", subject)
		}
	})

	t.Run("too long", func(t *testing.T) {
		requireValidationCode(t, v.Subject(strings.Repeat("a", SubjectMaxLen+1)), internal_errors.CodeTooLong)
	})

	t.Run("rune count, not byte count", func(t *testing.T) {
		// 60 multibyte runes are fine even though they exceed 60 bytes
		assert.NoError(t, v.Subject(strings.Repeat("й", SubjectMaxLen)))
	})

	t.Run("empty", func(t *testing.T) {
		requireValidationCode(t, v.Subject("   "), internal_errors.CodeEmpty)
	})

	t.Run("contains url", func(t *testing.T) {
		for _, subject := range []string{
			"check https://example.com/offer",
			"check HTTP://EXAMPLE.COM",
			"visit www.example.com now",
			"cheap stuff at example.com",
			"deals on shop.example.co.uk today",
		} {
			requireValidationCode(t, v.Subject(subject), internal_errors.CodeContainsUrl)
		}
	})
}

func TestBody(t *testing.T) {
	v := Content{}

	t.Run("valid body", func(t *testing.T) {
		assert.NoError(t, v.Body("Hey @janedoe, any idea?"))
	})

	t.Run("empty", func(t *testing.T) {
		requireValidationCode(t, v.Body(" \n\t"), internal_errors.CodeEmpty)
	})

	t.Run("disguised mention fails the whole request", func(t *testing.T) {
		requireValidationCode(t, v.Body("[@joedixon](https://spam.example)"), internal_errors.CodeInvalidMention)
	})

	t.Run("mention inside link destination", func(t *testing.T) {
		requireValidationCode(t, v.Body("[click](https://evil.example/@joedixon)"), internal_errors.CodeInvalidMention)
	})
}
