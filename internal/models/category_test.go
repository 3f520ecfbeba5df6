package models_test

import (
	"testing"

	"toytopia/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	for _, c := range []string{"avengers", "starwars", "transformers"} {
		got, ok := models.ParseCategory(c)
		assert.True(t, ok, c)
		assert.Equal(t, models.Category(c), got)
	}

	for _, c := range []string{"", "Avengers", "marvel", "star wars", "transformers "} {
		got, ok := models.ParseCategory(c)
		assert.False(t, ok, c)
		assert.Empty(t, got)
	}
}

func TestToyView(t *testing.T) {
	toy := &models.Toy{
		ID:          "t1",
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

	view := toy.View()
	assert.Equal(t, &models.ToyView{
		ID:          "t1",
		Picture:     "p",
		ToyName:     "Iron Man",
		SellerName:  "Tony",
		SellerEmail: "a@b.com",
		Price:       10,
		Rating:      5,
		Quantity:    3,
		Description: "d",
		SubCategory: "avengers",
	}, view)

	var missing *models.Toy
	assert.Nil(t, missing.View())
}

func TestToyInputApply(t *testing.T) {
	toy := models.Toy{ID: "keep", ToyName: "old", Quantity: 9}
	in := models.ToyInput{ToyName: "new", Price: 2.5}

	in.Apply(&toy)

	assert.Equal(t, "keep", toy.ID)
	assert.Equal(t, "new", toy.ToyName)
	assert.Equal(t, 2.5, toy.Price)
	assert.Zero(t, toy.Quantity)
}
