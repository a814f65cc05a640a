package services

import (
	"testing"

	"plantchatapi/pkg/apierrors"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateArtifact_MissingTitleRejectedBeforeQueries(t *testing.T) {
	db, mock := newMockPlantDB(t)

	svc := NewArtifactService()
	_, err := svc.Create(db, 123, CreateArtifactParams{
		SessionID: "session-1",
		Content:   "body",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !apierrors.IsKind(err, apierrors.BadRequest) {
		t.Errorf("expected BadRequest kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateArtifact_UnknownSessionIsNotFound(t *testing.T) {
	db, mock := newMockPlantDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `chat_sessions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "user_id"}))

	svc := NewArtifactService()
	_, err := svc.Create(db, 123, CreateArtifactParams{
		SessionID: "missing-session",
		Title:     "notes",
		Content:   "body",
	})
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !apierrors.IsKind(err, apierrors.NotFound) {
		t.Errorf("expected NotFound kind, got %v", err)
	}
}

func TestCreateArtifact_DefaultsTypeToGeneral(t *testing.T) {
	db, mock := newMockPlantDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `chat_sessions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "user_id"}).
			AddRow(1, "session-1", 123))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `artifacts`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	svc := NewArtifactService()
	artifact, err := svc.Create(db, 123, CreateArtifactParams{
		SessionID: "session-1",
		Title:     "notes",
		Content:   "body",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if artifact.ArtifactType != "general" {
		t.Errorf("expected type general, got %q", artifact.ArtifactType)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetArtifactByID_UnknownIsNotFound(t *testing.T) {
	db, mock := newMockPlantDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `artifacts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "user_id"}))

	svc := NewArtifactService()
	_, err := svc.GetByID(db, 42)
	if err == nil {
		t.Fatal("expected error for unknown artifact")
	}
	if !apierrors.IsKind(err, apierrors.NotFound) {
		t.Errorf("expected NotFound kind, got %v", err)
	}
}
