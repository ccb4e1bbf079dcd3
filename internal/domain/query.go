package domain

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type QueryStatus string

const (
	QueryPending    QueryStatus = "Pending"
	QueryInProgress QueryStatus = "In Progress"
	QueryResolved   QueryStatus = "Resolved"
)

func (s QueryStatus) Valid() bool {
	switch s {
	case QueryPending, QueryInProgress, QueryResolved:
		return true
	}
	return false
}

// Requester is the marketplace user who raised a support query.
type Requester struct {
	ID    string `db:"requester_id" json:"id"`
	Name  string `db:"requester_name" json:"name"`
	Email string `db:"requester_email" json:"email"`
	Type  string `db:"requester_type" json:"type"`
}

// Query is a support conversation. Replies are ordered oldest first.
type Query struct {
	ID        string `db:"id" json:"id"`
	Requester `json:"user"`
	Subject   string      `db:"subject" json:"subject"`
	Body      string      `db:"body" json:"message"`
	CreatedAt string      `db:"created_at" json:"date"`
	Priority  Priority    `db:"priority" json:"priority"`
	Status    QueryStatus `db:"status" json:"status"`
	Replies   []Reply     `db:"-" json:"replies"`
}

func QueryID(q Query) string { return q.ID }

type Reply struct {
	ID        string `db:"id" json:"id"`
	QueryID   string `db:"query_id" json:"-"`
	Author    string `db:"author" json:"adminName"`
	Body      string `db:"body" json:"message"`
	CreatedAt string `db:"created_at" json:"date"`
}
