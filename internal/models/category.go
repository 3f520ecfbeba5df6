package models

// Category is a sub category recognized by the category listing.
type Category string

const (
	CategoryAvengers     Category = "avengers"
	CategoryStarWars     Category = "starwars"
	CategoryTransformers Category = "transformers"
)

// Categories lists every supported category.
var Categories = []Category{CategoryAvengers, CategoryStarWars, CategoryTransformers}

// ParseCategory returns the category matching s and whether it is supported.
// Matching is exact and case sensitive.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
