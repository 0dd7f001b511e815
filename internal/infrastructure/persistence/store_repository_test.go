package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web2print/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStoreRepository creates a GormStoreRepository with a mocked SQL connection
func newMockStoreRepository(t *testing.T) (*GormStoreRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStoreRepository(gormDB), mock, mockDB
}

func TestGormStoreRepository_FindByID(t *testing.T) {
	t.Run("finds existing store", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "location", "contact", "admin_id"}).
			AddRow(storeID, "Campus Copy Center", "12 College Road", "+91-9876543210", nil)

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, 1).
			WillReturnRows(rows)

		st, err := repo.FindByID(context.Background(), storeID)

		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Equal(t, "Campus Copy Center", st.Name)
		assert.Nil(t, st.AdminID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent store", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		st, err := repo.FindByID(context.Background(), storeID)

		assert.Error(t, err)
		assert.Nil(t, st)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStoreRepository_FindByAdmin(t *testing.T) {
	t.Run("finds the store owned by an account", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()
		adminID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "location", "contact", "admin_id"}).
			AddRow(storeID, "Print Express", "4 Market Street", "+91-9123456789", adminID)

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE admin_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(adminID, 1).
			WillReturnRows(rows)

		st, err := repo.FindByAdmin(context.Background(), adminID)

		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.True(t, st.IsManagedBy(adminID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStoreRepository_FindAll_SortValidation(t *testing.T) {
	t.Run("default filter sorts newest first with id tiebreak", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "location", "contact", "admin_id"})

		mock.ExpectQuery(`SELECT \* FROM "stores" ORDER BY created_at DESC, id DESC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(rows)

		_, err := repo.FindAll(context.Background(), shared.DefaultFilter())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("whitelisted sort field keeps the id tiebreak", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		filter := shared.DefaultFilter()
		filter.OrderBy = "name"
		filter.OrderDir = "asc"

		rows := sqlmock.NewRows([]string{"id", "name", "location", "contact", "admin_id"})

		mock.ExpectQuery(`SELECT \* FROM "stores" ORDER BY name ASC, id DESC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(rows)

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		filter := shared.DefaultFilter()
		filter.OrderBy = "location; DROP TABLE stores"

		rows := sqlmock.NewRows([]string{"id", "name", "location", "contact", "admin_id"})

		mock.ExpectQuery(`SELECT \* FROM "stores" ORDER BY created_at DESC, id DESC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(rows)

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStoreRepository_Count(t *testing.T) {
	t.Run("counts all stores", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "stores"`).
			WillReturnRows(rows)

		count, err := repo.Count(context.Background(), shared.DefaultFilter())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
