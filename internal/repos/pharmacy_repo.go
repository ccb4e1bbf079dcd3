package repos

import (
	"github.com/jmoiron/sqlx"

	"medishare/internal/domain"
)

type PharmacyRepo struct{ db *sqlx.DB }

func NewPharmacyRepo(db *sqlx.DB) *PharmacyRepo { return &PharmacyRepo{db: db} }

func (r *PharmacyRepo) All() ([]domain.Pharmacy, error) {
	out := []domain.Pharmacy{}
	err := r.db.Select(&out, `SELECT id, name, license, city, email, status FROM pharmacies ORDER BY rowid`)
	return out, err
}

func (r *PharmacyRepo) SaveStatus(p domain.Pharmacy) error {
	res, err := r.db.Exec(`UPDATE pharmacies SET status = ? WHERE id = ?`, p.Status, p.ID)
	return mustAffect(res, err, "pharmacy", p.ID)
}
