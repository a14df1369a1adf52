package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return db, mock
}

func TestGetByActivationCode(t *testing.T) {
	t.Run("Empty code never hits the database", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		user, err := repo.GetByActivationCode("")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExistsByEmail(t *testing.T) {
	t.Run("Existing email", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WithArgs("u@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmail("u@example.com")

		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Unknown email", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByEmail("ghost@example.com")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}
