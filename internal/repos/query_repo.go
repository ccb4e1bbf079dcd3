package repos

import (
	"github.com/jmoiron/sqlx"

	"medishare/internal/domain"
)

type QueryRepo struct{ db *sqlx.DB }

func NewQueryRepo(db *sqlx.DB) *QueryRepo { return &QueryRepo{db: db} }

// All returns every query, newest first, with its replies attached in order.
func (r *QueryRepo) All() ([]domain.Query, error) {
	qs := []domain.Query{}
	if err := r.db.Select(&qs, `
		SELECT id, requester_id, requester_name, requester_email, requester_type,
		       subject, body, created_at, priority, status
		FROM queries
		ORDER BY created_at DESC
	`); err != nil {
		return nil, err
	}

	var replies []domain.Reply
	if err := r.db.Select(&replies, `
		SELECT id, query_id, author, body, created_at
		FROM replies
		ORDER BY query_id, seq
	`); err != nil {
		return nil, err
	}
	byQuery := map[string][]domain.Reply{}
	for _, rp := range replies {
		byQuery[rp.QueryID] = append(byQuery[rp.QueryID], rp)
	}
	for i := range qs {
		qs[i].Replies = byQuery[qs[i].ID]
		if qs[i].Replies == nil {
			qs[i].Replies = []domain.Reply{}
		}
	}
	return qs, nil
}

// Save writes the query status and appends any replies not yet stored.
// Replies are append-only, so stored ones are never rewritten.
func (r *QueryRepo) Save(q domain.Query) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE queries SET status = ? WHERE id = ?`, q.Status, q.ID)
	if err := mustAffect(res, err, "query", q.ID); err != nil {
		return err
	}

	var stored int
	if err := tx.Get(&stored, `SELECT COUNT(*) FROM replies WHERE query_id = ?`, q.ID); err != nil {
		return err
	}
	for i := stored; i < len(q.Replies); i++ {
		rp := q.Replies[i]
		if _, err := tx.Exec(`
			INSERT INTO replies(id, query_id, seq, author, body, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rp.ID, q.ID, i+1, rp.Author, rp.Body, rp.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
