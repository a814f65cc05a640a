package services

import (
	"testing"

	"plantchatapi/pkg/apierrors"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockPlantDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open error: %v", err)
	}
	return db, mock
}

func TestCreateSession_StoresRowWithGeneratedID(t *testing.T) {
	db, mock := newMockPlantDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `chat_sessions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := NewChatService()
	session, err := svc.CreateSession(db, 123)
	if err != nil {
		t.Fatalf("CreateSession error: %v", err)
	}
	if session.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if session.UserID != 123 {
		t.Errorf("expected user 123, got %d", session.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetSessionInfo_UnknownSessionIsNotFound(t *testing.T) {
	db, mock := newMockPlantDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `chat_sessions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "user_id"}))

	svc := NewChatService()
	_, err := svc.GetSessionInfo(db, "missing-session")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !apierrors.IsKind(err, apierrors.NotFound) {
		t.Errorf("expected NotFound kind, got %v", err)
	}
}

func TestSendMessage_UnknownSessionRejectedBeforeInsert(t *testing.T) {
	db, mock := newMockPlantDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `chat_sessions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "user_id"}))

	svc := NewChatService()
	_, err := svc.SendMessage(db, "missing-session", 123, "hello")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !apierrors.IsKind(err, apierrors.NotFound) {
		t.Errorf("expected NotFound kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no insert may happen for an unknown session: %v", err)
	}
}
