package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"toytopia/internal/models"
	"toytopia/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openSQLite opens a private in-memory database.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// newSQLiteRepository returns a repository over a private in-memory database.
func newSQLiteRepository(t *testing.T) repositories.ToyRepository {
	t.Helper()

	repo := repositories.NewGORMToyRepository(openSQLite(t), "all-toys")
	require.NoError(t, repo.Migrate())
	return repo
}

func TestGORMToyRepository(t *testing.T) {
	testToyRepository(t, newSQLiteRepository)
}

func TestGORMToyRepository_UpsertAfterConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	repo := repositories.NewGORMToyRepository(db, "all-toys")
	require.NoError(t, repo.Migrate())

	// Insert the same id between the upsert's count and its insert.
	id := uuid.NewString()
	inserted := false
	err := db.Callback().Query().After("gorm:query").Register("test:insert_after_count", func(tx *gorm.DB) {
		if inserted || tx.Statement.Table != "all_toys" {
			return
		}
		inserted = true
		other := models.Toy{ID: id, ToyName: "Optimus Prime"}
		if err := tx.Session(&gorm.Session{NewDB: true}).Table("all_toys").Create(&other).Error; err != nil {
			tx.AddError(err)
		}
	})
	require.NoError(t, err)

	res, err := repo.Upsert(ctx, id, models.ToyInput{ToyName: "Bumblebee", SubCategory: "transformers"})
	require.NoError(t, err)
	require.True(t, inserted)
	assert.True(t, res.Acknowledged)

	toy, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, toy)
	assert.Equal(t, "Bumblebee", toy.ToyName)
	assert.Equal(t, "transformers", toy.SubCategory)
}
