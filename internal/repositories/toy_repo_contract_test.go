package repositories_test

import (
	"context"
	"testing"
	"time"

	"toytopia/internal/models"
	"toytopia/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ironMan() models.ToyInput {
	return models.ToyInput{
		ToyName:     "Iron Man",
		Picture:     "p",
		SellerName:  "Tony",
		SellerEmail: "a@b.com",
		Price:       10,
		SubCategory: "avengers",
		Rating:      5,
		Quantity:    3,
		Description: "d",
	}
}

// testToyRepository exercises the behaviour every ToyRepository built on
// UUID identifiers must share.
func testToyRepository(t *testing.T, newRepo func(t *testing.T) repositories.ToyRepository) {
	ctx := context.Background()

	t.Run("CreateThenGet", func(t *testing.T) {
		repo := newRepo(t)
		toy := ironMan().Toy()

		res, err := repo.Create(ctx, &toy)
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		assert.NotEmpty(t, res.InsertedID)
		assert.Equal(t, res.InsertedID, toy.ID)

		got, err := repo.GetByID(ctx, res.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, res.InsertedID, got.ID)
		assert.Equal(t, ironMan().Toy(), withoutMeta(*got))
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.GetByID(ctx, uuid.NewString())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("InvalidID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, repositories.ErrInvalidID)

		_, err = repo.Upsert(ctx, "not-an-id", ironMan())
		assert.ErrorIs(t, err, repositories.ErrInvalidID)

		_, err = repo.Delete(ctx, "not-an-id")
		assert.ErrorIs(t, err, repositories.ErrInvalidID)
	})

	t.Run("ListHonoursLimit", func(t *testing.T) {
		repo := newRepo(t)
		for i := 0; i < 25; i++ {
			toy := ironMan().Toy()
			_, err := repo.Create(ctx, &toy)
			require.NoError(t, err)
		}

		toys, err := repo.List(ctx, 20)
		require.NoError(t, err)
		assert.Len(t, toys, 20)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		repo := newRepo(t)
		toys, err := repo.List(ctx, 20)
		require.NoError(t, err)
		assert.NotNil(t, toys)
		assert.Empty(t, toys)
	})

	t.Run("FindByCategoryAndSeller", func(t *testing.T) {
		repo := newRepo(t)
		inputs := []models.ToyInput{
			{ToyName: "Iron Man", SubCategory: "avengers", SellerEmail: "a@b.com"},
			{ToyName: "R2-D2", SubCategory: "starwars", SellerEmail: "c@d.com"},
			{ToyName: "Thor", SubCategory: "avengers", SellerEmail: "c@d.com"},
		}
		for _, in := range inputs {
			toy := in.Toy()
			_, err := repo.Create(ctx, &toy)
			require.NoError(t, err)
		}

		avengers, err := repo.FindByCategory(ctx, models.CategoryAvengers)
		require.NoError(t, err)
		assert.Len(t, avengers, 2)
		for _, toy := range avengers {
			assert.Equal(t, "avengers", toy.SubCategory)
		}

		transformers, err := repo.FindByCategory(ctx, models.CategoryTransformers)
		require.NoError(t, err)
		assert.Empty(t, transformers)

		mine, err := repo.FindBySeller(ctx, "c@d.com")
		require.NoError(t, err)
		assert.Len(t, mine, 2)
		for _, toy := range mine {
			assert.Equal(t, "c@d.com", toy.SellerEmail)
		}

		all, err := repo.FindBySeller(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("UpsertExisting", func(t *testing.T) {
		repo := newRepo(t)
		toy := ironMan().Toy()
		created, err := repo.Create(ctx, &toy)
		require.NoError(t, err)

		changed := models.ToyInput{ToyName: "War Machine", SubCategory: "avengers", Price: 12}
		res, err := repo.Upsert(ctx, created.InsertedID, changed)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		assert.EqualValues(t, 1, res.ModifiedCount)
		assert.Zero(t, res.UpsertedCount)
		assert.Nil(t, res.UpsertedID)

		got, err := repo.GetByID(ctx, created.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.InsertedID, got.ID)
		assert.Equal(t, changed.Toy(), withoutMeta(*got))
	})

	t.Run("UpsertMissingCreates", func(t *testing.T) {
		repo := newRepo(t)
		id := uuid.NewString()

		res, err := repo.Upsert(ctx, id, ironMan())
		require.NoError(t, err)
		assert.Zero(t, res.MatchedCount)
		assert.EqualValues(t, 1, res.UpsertedCount)
		require.NotNil(t, res.UpsertedID)
		assert.Equal(t, id, *res.UpsertedID)

		toys, err := repo.List(ctx, 20)
		require.NoError(t, err)
		require.Len(t, toys, 1)
		assert.Equal(t, id, toys[0].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		toy := ironMan().Toy()
		created, err := repo.Create(ctx, &toy)
		require.NoError(t, err)

		res, err := repo.Delete(ctx, created.InsertedID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.DeletedCount)

		toys, err := repo.List(ctx, 20)
		require.NoError(t, err)
		assert.Empty(t, toys)

		res, err = repo.Delete(ctx, created.InsertedID)
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		assert.Zero(t, res.DeletedCount)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(ctx))
	})
}

func withoutMeta(t models.Toy) models.Toy {
	t.ID = ""
	t.CreatedAt = time.Time{}
	t.UpdatedAt = time.Time{}
	return t
}
