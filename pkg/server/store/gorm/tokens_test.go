package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

func TestTokensStoreCreateToken(t *testing.T) {
	db, mock := newMockDB(t)
	tokensStore := NewTokensStore(db)

	mock.ExpectExec(`INSERT INTO tokens \(value, user_id\)`).
		WithArgs("token-value", int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, tokensStore.CreateToken("token-value", 42))
	verifyExpectations(t, mock)
}

func TestTokensStoreFindUserByToken(t *testing.T) {
	db, mock := newMockDB(t)
	tokensStore := NewTokensStore(db)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(42), "Alice", "alice", "hash")
	mock.ExpectQuery(`JOIN tokens t ON t.user_id = u.id`).
		WithArgs("token-value").
		WillReturnRows(rows)

	user, err := tokensStore.FindUserByToken("token-value")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice", user.Username)
	verifyExpectations(t, mock)
}

func TestTokensStoreFindUserByTokenNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	tokensStore := NewTokensStore(db)

	mock.ExpectQuery(`JOIN tokens t ON t.user_id = u.id`).
		WithArgs("expired").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := tokensStore.FindUserByToken("expired")
	assert.ErrorIs(t, err, store.ErrNotFound)
	verifyExpectations(t, mock)
}
