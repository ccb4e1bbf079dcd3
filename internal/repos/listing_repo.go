package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"medishare/internal/domain"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `
    id, name, description, category, price, quantity, expiry_date, manufacture_date,
    listing_date, status, bill_verified, seller_id, seller_name, seller_email, rating`

// All returns every listing in insertion order; callers filter and sort in memory.
func (r *ListingRepo) All() ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.Select(&out, `SELECT `+listingCols+` FROM listings ORDER BY rowid`)
	return out, err
}

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return l, &domain.NotFoundError{Kind: "listing", ID: id}
	}
	return l, err
}

func (r *ListingRepo) Insert(l domain.Listing) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO listings(`+listingCols+`)
	  VALUES(:id, :name, :description, :category, :price, :quantity, :expiry_date, :manufacture_date,
	         :listing_date, :status, :bill_verified, :seller_id, :seller_name, :seller_email, :rating)
	`, l)
	return err
}

// SaveReview persists the moderation fields of a listing, provided its stored
// status is still prev. A listing changed in between yields ErrConflict.
func (r *ListingRepo) SaveReview(l domain.Listing, prev domain.ListingStatus) error {
	res, err := r.db.Exec(`UPDATE listings SET status = ?, bill_verified = ? WHERE id = ? AND status = ?`,
		l.Status, l.BillVerified, l.ID, prev)
	return r.mustAffectListing(res, err, l.ID)
}

// SaveStock writes quantity and status only if the stored row still matches
// before, so a concurrent purchase or moderation decision is never overwritten.
func (r *ListingRepo) SaveStock(l, before domain.Listing) error {
	res, err := r.db.Exec(`
		UPDATE listings SET quantity = ?, status = ?
		WHERE id = ? AND quantity = ? AND status = ?
	`, l.Quantity, l.Status, l.ID, before.Quantity, before.Status)
	return r.mustAffectListing(res, err, l.ID)
}

// mustAffectListing tells a missing listing apart from one that changed.
func (r *ListingRepo) mustAffectListing(res sql.Result, err error, id string) error {
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var exists int
	if err := r.db.Get(&exists, `SELECT COUNT(*) FROM listings WHERE id = ?`, id); err != nil {
		return err
	}
	if exists == 0 {
		return &domain.NotFoundError{Kind: "listing", ID: id}
	}
	return fmt.Errorf("listing %s: %w", id, domain.ErrConflict)
}

func mustAffect(res sql.Result, err error, kind, id string) error {
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Kind: kind, ID: id}
	}
	return nil
}
