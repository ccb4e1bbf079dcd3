// Package support manages admin replies to user support queries.
package support

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"medishare/internal/collection"
	"medishare/internal/domain"
)

// MinReplyLength is counted in characters after trimming surrounding space.
const MinReplyLength = 5

// AppendReply adds a reply from author. A Pending query moves to In Progress;
// any other status is kept. On error q is returned untouched.
func AppendReply(q domain.Query, author, text string, at time.Time) (domain.Query, error) {
	body := strings.TrimSpace(text)
	if utf8.RuneCountInString(body) < MinReplyLength {
		return q, domain.NewValidationError("message", fmt.Sprintf("Reply must be at least %d characters", MinReplyLength))
	}
	r := domain.Reply{
		ID:        uuid.NewString(),
		QueryID:   q.ID,
		Author:    author,
		Body:      body,
		CreatedAt: at.UTC().Format(time.RFC3339),
	}
	next := q
	next.Replies = append(slices.Clip(slices.Clone(q.Replies)), r)
	if next.Status == domain.QueryPending {
		next.Status = domain.QueryInProgress
	}
	return next, nil
}

// MarkResolved forces the query to Resolved whatever its current status.
func MarkResolved(q domain.Query) domain.Query {
	q.Status = domain.QueryResolved
	return q
}

// Reopen moves a Resolved query back to In Progress.
func Reopen(q domain.Query) (domain.Query, error) {
	if q.Status != domain.QueryResolved {
		return q, fmt.Errorf("reopen from %q: %w", q.Status, domain.ErrInvalidTransition)
	}
	q.Status = domain.QueryInProgress
	return q, nil
}

// Reply applies AppendReply to the query with the given id inside a collection.
func Reply(queries []domain.Query, id, author, text string, at time.Time) ([]domain.Query, error) {
	return collection.Update(queries, id, domain.QueryID, "query", func(q domain.Query) (domain.Query, error) {
		return AppendReply(q, author, text, at)
	})
}

func Resolve(queries []domain.Query, id string) ([]domain.Query, error) {
	return collection.Update(queries, id, domain.QueryID, "query", func(q domain.Query) (domain.Query, error) {
		return MarkResolved(q), nil
	})
}
