package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

// reject malformed inputs early
func TestValidationBadInputs(t *testing.T) {
	app, _ := newApp(t, testConfig())

	cases := []string{
		"/api/v1/listings?q=%3Cscript%3E",
		"/api/v1/listings?category=Pain%20Killers",
		"/api/v1/listings?min=-1",
		"/api/v1/listings?max=abc",
		"/api/v1/listings?min=5&max=1",
		"/api/v1/listings?sort=rating",
	}
	for _, path := range cases {
		entries := captureLogs(t, func() {
			resp := getJSON(t, app, path, "", nil)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", path, resp.StatusCode)
			}
		})
		if _, ok := findLog(entries, "api.listings.reject"); !ok {
			t.Errorf("%s: validation failure not logged", path)
		}
	}

	resp, err := app.Test(getRequest("/medicines?q=%3Cscript%3E", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad search page expected 400, got %d", resp.StatusCode)
	}
}

// templates auto-escape untrusted text
func TestTemplateAutoEscape(t *testing.T) {
	app, db := newApp(t, testConfig())
	_, err := db.Exec(`
		INSERT INTO listings(id,name,category,price,quantity,expiry_date,listing_date,status,seller_name)
		VALUES('xss-1','<script>alert(1)</script>','painkillers',1.00,1,'2026-01-01','2025-04-01','available','<b>me</b>')
	`)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(getRequest("/medicines", ""))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if strings.Contains(s, "<script>alert(1)</script>") {
		t.Fatalf("found unescaped script tag in output")
	}
	if !strings.Contains(s, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("escaped script not found; output=%s", s)
	}
}
