package repos_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"medishare/internal/domain"
	"medishare/internal/repos"
)

func mockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func TestSaveReviewMissingRowIsNotFound(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE listings SET status = ?, bill_verified = ? WHERE id = ? AND status = ?`)).
		WithArgs("approved", true, "ghost", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings`).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	err := repos.NewListingRepo(db).SaveReview(domain.Listing{ID: "ghost", Status: domain.ListingApproved, BillVerified: true}, domain.ListingPending)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSaveReviewChangedStatusIsConflict(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectExec(`UPDATE listings SET status = \?, bill_verified = \?`).
		WithArgs("approved", true, "m2", "rejected").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings`).WithArgs("m2").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	err := repos.NewListingRepo(db).SaveReview(domain.Listing{ID: "m2", Status: domain.ListingApproved, BillVerified: true}, domain.ListingRejected)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSaveStockDetectsConcurrentChange(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectExec(`UPDATE listings SET quantity = \?, status = \?`).
		WithArgs(3, "available", "b1", 5, "available").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings`).WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	before := domain.Listing{ID: "b1", Quantity: 5, Status: domain.ListingAvailable}
	after := domain.Listing{ID: "b1", Quantity: 3, Status: domain.ListingAvailable}
	err := repos.NewListingRepo(db).SaveStock(after, before)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestQuerySaveAppendsOnlyNewReplies(t *testing.T) {
	db, mock := mockDB(t)
	q := domain.Query{
		ID:     "Q1",
		Status: domain.QueryInProgress,
		Replies: []domain.Reply{
			{ID: "R1", Author: "Admin", Body: "first", CreatedAt: "2025-04-10T00:00:00Z"},
			{ID: "R2", Author: "Admin", Body: "second", CreatedAt: "2025-04-11T00:00:00Z"},
		},
	}
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE queries SET status`).WithArgs("In Progress", "Q1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM replies`).WithArgs("Q1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO replies`).
		WithArgs("R2", "Q1", 2, "Admin", "second", "2025-04-11T00:00:00Z").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repos.NewQueryRepo(db).Save(q); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestQuerySaveRollsBackOnError(t *testing.T) {
	db, mock := mockDB(t)
	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE queries SET status`).WillReturnError(boom)
	mock.ExpectRollback()

	if err := repos.NewQueryRepo(db).Save(domain.Query{ID: "Q1", Status: domain.QueryResolved}); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenDBSeedsSample(t *testing.T) {
	db, err := repos.OpenDB(":memory:", true)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cats, err := repos.NewCategoryRepo(db).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 6 {
		t.Fatalf("want 6 categories, got %d", len(cats))
	}

	qs, err := repos.NewQueryRepo(db).All()
	if err != nil {
		t.Fatal(err)
	}
	if qs[0].ID != "Q1005" {
		t.Fatalf("want newest query first, got %s", qs[0].ID)
	}
	for _, q := range qs {
		if q.ID == "Q1006" {
			if len(q.Replies) != 2 || q.Replies[0].ID != "R2" || q.Replies[1].ID != "R3" {
				t.Fatalf("replies out of order: %+v", q.Replies)
			}
			if q.Requester.Email != "mdavis@example.com" {
				t.Fatalf("requester not mapped: %+v", q.Requester)
			}
		}
	}

	admin, err := repos.NewAccountRepo(db).ByEmail("ADMIN@medishare.test")
	if err != nil {
		t.Fatal(err)
	}
	if admin.Role != domain.RoleAdmin || admin.Hash == "" {
		t.Fatalf("bad admin: %+v", admin)
	}
}

func TestOpenDBWithoutSample(t *testing.T) {
	db, err := repos.OpenDB(":memory:", false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ls, err := repos.NewListingRepo(db).All()
	if err != nil {
		t.Fatal(err)
	}
	if len(ls) != 0 {
		t.Fatalf("want empty store, got %d listings", len(ls))
	}
}

func TestSessions(t *testing.T) {
	db, err := repos.OpenDB(":memory:", false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	r := repos.NewAccountRepo(db)
	if err := r.BindSession("sid-1", "u-admin"); err != nil {
		t.Fatal(err)
	}
	a, err := r.SessionAccount("sid-1")
	if err != nil || a.ID != "u-admin" {
		t.Fatalf("session lookup: %+v %v", a, err)
	}
	if err := r.UnbindSession("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.SessionAccount("sid-1"); err == nil {
		t.Fatal("want error after logout")
	}
}
