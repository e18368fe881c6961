package repositories

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/model-registry/model-registry/internal/db/models"
)

func newAuditRepo(t *testing.T) (*AuditRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAuditRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreateAuditLog(t *testing.T) {
	repo, mock := newAuditRepo(t)
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	userID := "user-1"
	ip := "192.0.2.1"
	entry := &models.AuditLog{
		UserID:     &userID,
		Action:     "POST /api/v1/models",
		StatusCode: 201,
		IPAddress:  &ip,
	}
	if err := repo.CreateAuditLog(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID == "" {
		t.Error("expected generated audit log ID")
	}
}

func TestListAuditLogs_DeniedOnly(t *testing.T) {
	repo, mock := newAuditRepo(t)

	userID := "user-2"
	ip := "192.0.2.7"
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource_type", "resource_id", "status_code", "denied", "ip_address", "created_at"}).
		AddRow("log-1", &userID, "model.visibility_denied", "model", "model-1", 404, true, &ip, time.Now())
	mock.ExpectQuery("SELECT.*FROM audit_logs.*AND denied.*ORDER BY created_at DESC").
		WithArgs(50, 0).
		WillReturnRows(rows)

	logs, err := repo.ListAuditLogs(context.Background(), AuditFilters{DeniedOnly: true}, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	if !logs[0].Denied {
		t.Error("expected denied entry")
	}
}

func TestListAuditLogs_UserFilter(t *testing.T) {
	repo, mock := newAuditRepo(t)
	userID := "user-1"

	mock.ExpectQuery("SELECT.*FROM audit_logs.*AND user_id").
		WithArgs(userID, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "resource_type", "resource_id", "status_code", "denied", "ip_address", "created_at"}))

	logs, err := repo.ListAuditLogs(context.Background(), AuditFilters{UserID: &userID}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("expected no logs, got %d", len(logs))
	}
}
