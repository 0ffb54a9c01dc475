package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/scim-provision/internal/repo"
)

func TestAudit_RecordsExchange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO request_log`).
		WithArgs("post", "/Users", `{"userName":"alice"}`, `{"id":1}`, 201).
		WillReturnResult(sqlmock.NewResult(1, 1))

	var handlerSawBody string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		handlerSawBody = string(b)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	})

	wrapped := Audit(repo.NewAuditRepo(db))(next)

	req := httptest.NewRequest("POST", "/Users", bytes.NewReader([]byte(`{"userName":"alice"}`)))
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	// The middleware reads the body for the audit record but must hand the
	// handler an intact copy.
	if handlerSawBody != `{"userName":"alice"}` {
		t.Errorf("handler body: got %q", handlerSawBody)
	}
	if rr.Code != http.StatusCreated || rr.Body.String() != `{"id":1}` {
		t.Errorf("response passthrough broken: %d %s", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// The audit record fires for every outcome, including empty-bodied failures.
func TestAudit_RecordsForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO request_log`).
		WithArgs("get", "/Users/1", "", "", 403).
		WillReturnResult(sqlmock.NewResult(1, 1))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	wrapped := Audit(repo.NewAuditRepo(db))(next)

	req := httptest.NewRequest("GET", "/Users/1", nil)
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// An audit write failure is logged and swallowed; the client still gets its
// response.
func TestAudit_WriteFailureDoesNotBreakResponse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO request_log`).
		WillReturnError(io.ErrUnexpectedEOF)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	wrapped := Audit(repo.NewAuditRepo(db))(next)

	req := httptest.NewRequest("GET", "/token", nil)
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Errorf("response: got %d %q", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
