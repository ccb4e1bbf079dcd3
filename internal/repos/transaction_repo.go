package repos

import (
	"github.com/jmoiron/sqlx"

	"medishare/internal/domain"
)

type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Create(t domain.Transaction) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO transactions
	    (id, listing_id, medicine, buyer_name, address, quantity, unit_price, total, status, created_at)
	  VALUES
	    (:id, :listing_id, :medicine, :buyer_name, :address, :quantity, :unit_price, :total, :status, :created_at)
	`, t)
	return err
}

func (r *TransactionRepo) ListLatest(limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Transaction{}
	err := r.db.Select(&out, `
		SELECT id, listing_id, medicine, buyer_name, address, quantity, unit_price, total, status, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *TransactionRepo) CountByStatus(status domain.TransactionStatus) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM transactions WHERE status = ?`, status)
	return n, err
}

type DisposalRepo struct{ db *sqlx.DB }

func NewDisposalRepo(db *sqlx.DB) *DisposalRepo { return &DisposalRepo{db: db} }

func (r *DisposalRepo) Create(d domain.DisposalRequest) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO disposal_requests
	    (id, medicine_name, quantity, expiry_date, address, phone, email, description, pickup_date, created_at)
	  VALUES
	    (:id, :medicine_name, :quantity, :expiry_date, :address, :phone, :email, :description, :pickup_date, :created_at)
	`, d)
	return err
}

func (r *DisposalRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM disposal_requests`)
	return n, err
}
