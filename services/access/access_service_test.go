package access

import (
	"context"
	"regexp"
	"testing"

	"plantchatapi/pkg/apierrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockCentralDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

const countQuery = "SELECT count(*) FROM `user_plant_access` WHERE user_id = ? AND plant_id = ?"

func TestCheckAccess_GrantedWhenRowExists(t *testing.T) {
	db, mock := newMockCentralDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs(123, "CAIRO").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	svc := NewAccessService(db)
	allowed, err := svc.CheckAccess(context.Background(), 123, "CAIRO")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAccess_DeniedWhenNoRow(t *testing.T) {
	db, mock := newMockCentralDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs(999, "CAIRO").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	svc := NewAccessService(db)
	allowed, err := svc.CheckAccess(context.Background(), 999, "CAIRO")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCheckAccess_CentralOutageIsErrorNotDenied(t *testing.T) {
	db, mock := newMockCentralDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs(123, "CAIRO").
		WillReturnError(assert.AnError)

	svc := NewAccessService(db)
	_, err := svc.CheckAccess(context.Background(), 123, "CAIRO")
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, apierrors.ServiceUnavailable),
		"infrastructure failure must surface as ServiceUnavailable, got %v", err)
}

func TestCheckAccess_NotCachedAcrossCalls(t *testing.T) {
	db, mock := newMockCentralDB(t)
	// Grant present on the first call, revoked before the second. The second
	// call must hit the database again and observe the revocation.
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs(123, "CAIRO").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs(123, "CAIRO").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	svc := NewAccessService(db)

	allowed, err := svc.CheckAccess(context.Background(), 123, "CAIRO")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.CheckAccess(context.Background(), 123, "CAIRO")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
