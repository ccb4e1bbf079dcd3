package support

import (
	"medishare/internal/collection"
	"medishare/internal/domain"
)

// Criteria narrows the support inbox. Status and Priority accept "All" (or "")
// to disable the filter.
type Criteria struct {
	Text     string
	Status   string
	Priority string
}

func (c Criteria) Validate() error {
	if !collection.IsAll(c.Status) && !domain.QueryStatus(c.Status).Valid() {
		return domain.NewValidationError("status", "unknown status "+c.Status)
	}
	if !collection.IsAll(c.Priority) && !domain.Priority(c.Priority).Valid() {
		return domain.NewValidationError("priority", "unknown priority "+c.Priority)
	}
	return nil
}

func (c Criteria) Match(q domain.Query) bool {
	return collection.ContainsAny(c.Text, q.Subject, q.Body, q.Requester.Name, q.Requester.Email) &&
		(collection.IsAll(c.Status) || string(q.Status) == c.Status) &&
		(collection.IsAll(c.Priority) || string(q.Priority) == c.Priority)
}

func Filter(queries []domain.Query, c Criteria) []domain.Query {
	return collection.Filter(queries, c.Match)
}

// Counts is the inbox overview per status.
type Counts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

func Count(queries []domain.Query) Counts {
	var c Counts
	for _, q := range queries {
		switch q.Status {
		case domain.QueryPending:
			c.Pending++
		case domain.QueryInProgress:
			c.InProgress++
		case domain.QueryResolved:
			c.Resolved++
		}
	}
	return c
}

// Open is the number of queries still awaiting resolution.
func (c Counts) Open() int { return c.Pending + c.InProgress }
