package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the store, creates the schema and, when seed is set, loads the
// sample marketplace data. The admin account is always ensured.
func OpenDB(dsn string, seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	return prepare(db, seed)
}

// prepare readies an opened store and closes it on any failure.
func prepare(db *sqlx.DB, seed bool) (*sqlx.DB, error) {
	if err := initStore(db, seed); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func initStore(db *sqlx.DB, seed bool) error {
	if err := db.Ping(); err != nil {
		return err
	}
	if err := ensureSchema(db); err != nil {
		return err
	}
	if seed {
		if err := seedIfEmpty(db); err != nil {
			return err
		}
	}
	return seedAdmin(db)
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS listings(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  price REAL NOT NULL CHECK (price >= 0),
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  expiry_date TEXT NOT NULL,
  manufacture_date TEXT NOT NULL DEFAULT '',
  listing_date TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('pending','approved','rejected','available','reserved','sold')),
  bill_verified INTEGER NOT NULL DEFAULT 0,
  seller_id TEXT NOT NULL DEFAULT '',
  seller_name TEXT NOT NULL DEFAULT '',
  seller_email TEXT NOT NULL DEFAULT '',
  rating REAL NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5)
);
CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);

CREATE TABLE IF NOT EXISTS accounts(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL CHECK (role IN ('Donor','Recipient','Pharmacy','ADMIN')),
  status TEXT NOT NULL CHECK (status IN ('pending','verified','rejected')),
  join_date TEXT NOT NULL DEFAULT '',
  total_transactions INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  account_id TEXT NULL REFERENCES accounts(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);

CREATE TABLE IF NOT EXISTS pharmacies(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  license TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL CHECK (status IN ('pending','verified','rejected'))
);

CREATE TABLE IF NOT EXISTS queries(
  id TEXT PRIMARY KEY,
  requester_id TEXT NOT NULL,
  requester_name TEXT NOT NULL,
  requester_email TEXT NOT NULL,
  requester_type TEXT NOT NULL DEFAULT '',
  subject TEXT NOT NULL,
  body TEXT NOT NULL,
  created_at TEXT NOT NULL,
  priority TEXT NOT NULL CHECK (priority IN ('Low','Medium','High','Urgent')),
  status TEXT NOT NULL CHECK (status IN ('Pending','In Progress','Resolved'))
);

CREATE TABLE IF NOT EXISTS replies(
  id TEXT PRIMARY KEY,
  query_id TEXT NOT NULL REFERENCES queries(id) ON DELETE CASCADE,
  seq INTEGER NOT NULL,
  author TEXT NOT NULL,
  body TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_replies_query ON replies(query_id, seq);

CREATE TABLE IF NOT EXISTS transactions(
  id TEXT PRIMARY KEY,
  listing_id TEXT NOT NULL,
  medicine TEXT NOT NULL,
  buyer_name TEXT NOT NULL,
  address TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price REAL NOT NULL,
  total REAL NOT NULL,
  status TEXT NOT NULL DEFAULT 'Processing',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS disposal_requests(
  id TEXT PRIMARY KEY,
  medicine_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  expiry_date TEXT NOT NULL,
  address TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  pickup_date TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting sample categories/listings/accounts/pharmacies/queries")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('painkillers','Painkillers'),
	  ('antibiotics','Antibiotics'),
	  ('antiallergic','Antiallergic'),
	  ('cardiovascular','Cardiovascular'),
	  ('antidiabetic','Antidiabetic'),
	  ('gastrointestinal','Gastrointestinal')`)

	// Marketplace stock
	tx.MustExec(`INSERT INTO listings(id,name,category,price,quantity,expiry_date,listing_date,status,bill_verified,seller_id,seller_name,rating) VALUES
	  ('b1','Paracetamol 500mg','painkillers',2.50,30,'2025-12-31','2025-03-01','available',1,'s1','John D.',4.8),
	  ('b2','Amoxicillin 250mg','antibiotics',4.75,20,'2025-06-30','2025-03-02','available',1,'s2','Sarah M.',4.5),
	  ('b3','Cetirizine 10mg','antiallergic',3.25,15,'2025-09-15','2025-03-03','available',1,'s3','Robert K.',4.9),
	  ('b4','Lisinopril 10mg','cardiovascular',5.20,25,'2025-08-20','2025-03-04','available',1,'s4','Emma L.',4.7),
	  ('b5','Metformin 500mg','antidiabetic',3.75,40,'2025-10-10','2025-03-05','available',1,'s5','Michael T.',4.6),
	  ('b6','Omeprazole 20mg','gastrointestinal',3.90,18,'2025-07-25','2025-03-06','available',1,'s6','Jessica P.',4.4)`)

	// Seller submissions awaiting moderation
	tx.MustExec(`INSERT INTO listings(id,name,category,price,quantity,expiry_date,manufacture_date,listing_date,status,bill_verified,seller_id,seller_name,seller_email) VALUES
	  ('m1','Paracetamol 500mg','painkillers',0.50,20,'2026-05-15','2024-05-15','2025-03-28','pending',0,'u1','John Smith','john.smith@example.com'),
	  ('m2','Amoxicillin 250mg','antibiotics',0.75,14,'2025-12-10','2024-01-10','2025-03-25','approved',1,'u2','Sarah Johnson','sarah.j@example.com'),
	  ('m3','Losartan 50mg','cardiovascular',0.80,30,'2026-08-22','2024-08-22','2025-03-30','pending',0,'u3','Raj Patel','raj.p@example.com'),
	  ('m4','Metformin 500mg','antidiabetic',0.40,60,'2026-02-15','2024-02-15','2025-03-22','rejected',0,'u4','Lisa Chen','lisa.chen@example.com'),
	  ('m5','Atorvastatin 10mg','cardiovascular',0.65,30,'2026-06-30','2024-06-30','2025-03-29','pending',0,'u5','Miguel Rodriguez','miguel.r@example.com')`)

	tx.MustExec(`INSERT INTO accounts(id,email,name,phone,role,status,join_date,total_transactions) VALUES
	  ('u1','john.smith@example.com','John Smith','+1 (555) 123-4567','Donor','pending','2025-03-15',0),
	  ('u2','sarah.j@example.com','Sarah Johnson','+1 (555) 987-6543','Recipient','verified','2025-03-18',3),
	  ('u3','raj.p@example.com','Raj Patel','+1 (555) 456-7890','Donor','pending','2025-03-20',0),
	  ('u4','lisa.chen@example.com','Lisa Chen','+1 (555) 333-2222','Recipient','rejected','2025-03-21',0),
	  ('u5','miguel.r@example.com','Miguel Rodriguez','+1 (555) 777-8888','Pharmacy','pending','2025-03-22',0)`)

	tx.MustExec(`INSERT INTO pharmacies(id,name,license,city,email,status) VALUES
	  ('p1','Pharmacy Plus','NY-PH-1021','New York','contact@pharmacyplus.com','verified'),
	  ('p2','Health Pharmacy','CA-PH-4410','Los Angeles','info@healthpharmacy.com','pending'),
	  ('p3','MediCare Drugs','IL-PH-7789','Chicago','hello@medicaredrugs.com','verified'),
	  ('p4','City Pharmacy','TX-PH-3321','Houston','desk@citypharmacy.com','verified'),
	  ('p5','Care Drugs','FL-PH-6540','Miami','care@caredrugs.com','rejected')`)

	tx.MustExec(`INSERT INTO queries(id,requester_id,requester_name,requester_email,requester_type,subject,body,created_at,priority,status) VALUES
	  ('Q1001','U124','John Smith','johnsmith@example.com','Donor','Question about medicine donation process','I have some unused antibiotics that I''d like to donate. They expire in 2 months. Is that acceptable for donation?','2025-04-10T14:23:00Z','Medium','Pending'),
	  ('Q1002','U256','Lisa Chen','lisachen@example.com','Recipient','Unable to find my prescribed medication','I''ve been searching for Metformin 500mg for a week but it''s not showing up in the available medicines.','2025-04-11T09:45:00Z','High','Pending'),
	  ('Q1003','U078','Valley Care Pharmacy','support@valleycarepharmacy.com','Pharmacy','Issue with verification system','We''re trying to verify a batch of donated medications but the system keeps timing out.','2025-04-09T16:12:00Z','High','Pending'),
	  ('Q1004','U342','Robert Johnson','robert.johnson@example.com','Donor','Haven''t received my reimbursement','I donated three different medications over two weeks ago, but I still haven''t received my partial reimbursement.','2025-04-08T11:30:00Z','Medium','In Progress'),
	  ('Q1005','U189','Sarah Williams','sarahw@example.com','Recipient','Medicine arrived damaged','I received my order yesterday, but the packaging was damaged and some of the blister packs were open.','2025-04-12T13:15:00Z','Urgent','Pending'),
	  ('Q1006','U421','Michael Davis','mdavis@example.com','Donor','Donation tax receipt request','I need a consolidated tax receipt for all of my donations.','2025-04-05T10:20:00Z','Low','Resolved')`)

	tx.MustExec(`INSERT INTO replies(id,query_id,seq,author,body,created_at) VALUES
	  ('R1','Q1004',1,'Admin User','Hello Robert, I''m looking into this issue for you. Can you confirm the transaction IDs for your donations?','2025-04-08T14:45:00Z'),
	  ('R2','Q1006',1,'Admin User','You can generate a consolidated tax receipt from Donation History in your account dashboard.','2025-04-05T15:30:00Z'),
	  ('R3','Q1006',2,'Michael Davis','Thank you! I found it and was able to generate the receipt successfully.','2025-04-06T09:10:00Z')`)

	tx.MustExec(`INSERT INTO transactions(id,listing_id,medicine,buyer_name,address,quantity,unit_price,total,status,created_at) VALUES
	  ('TRX-12346','b5','Metformin 500mg','Jane Smith','12 Park Ave, New York',2,3.75,7.50,'Completed','2025-04-12T10:00:00Z'),
	  ('TRX-12348','b3','Cetirizine 10mg','Sarah Wilson','8 Lake Rd, Houston',2,3.25,6.50,'Completed','2025-04-10T10:00:00Z'),
	  ('TRX-12350','b6','Omeprazole 20mg','Robert Johnson','77 Hill St, Chicago',1,3.90,3.90,'Processing','2025-04-08T10:00:00Z')`)

	return tx.Commit()
}

// seedAdmin ensures the back-office administrator exists (idempotent).
func seedAdmin(db *sqlx.DB) error {
	h, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO accounts(id,email,name,password_hash,role,status,join_date)
		VALUES('u-admin','admin@medishare.test','Admin User',?,'ADMIN','verified','2025-01-01')
		ON CONFLICT(id) DO NOTHING
	`, string(h))
	return err
}
