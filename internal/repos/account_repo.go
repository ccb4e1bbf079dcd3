package repos

import (
	"github.com/jmoiron/sqlx"

	"medishare/internal/domain"
)

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = `id, email, name, phone, password_hash, role, status, join_date, total_transactions`

func (r *AccountRepo) All() ([]domain.Account, error) {
	out := []domain.Account{}
	err := r.DB.Select(&out, `SELECT `+accountCols+` FROM accounts ORDER BY rowid`)
	return out, err
}

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `SELECT `+accountCols+` FROM accounts WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) SaveStatus(a domain.Account) error {
	res, err := r.DB.Exec(`UPDATE accounts SET status = ? WHERE id = ?`, a.Status, a.ID)
	return mustAffect(res, err, "account", a.ID)
}

func (r *AccountRepo) BindSession(sid, accountID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,account_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET account_id=excluded.account_id,last_seen=CURRENT_TIMESTAMP`, sid, accountID)
	return err
}

func (r *AccountRepo) SessionAccount(sid string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
      SELECT a.id,a.email,a.name,a.phone,a.password_hash,a.role,a.status,a.join_date,a.total_transactions
      FROM sessions s
      JOIN accounts a ON a.id=s.account_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET account_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
