package models

import "time"

// Toy represents a toy listed in the catalog.
type Toy struct {
	ID          string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	ToyName     string    `json:"toyName"`
	Picture     string    `json:"picture"`
	SellerName  string    `json:"sellerName"`
	SellerEmail string    `json:"sellerEmail" gorm:"index"`
	Price       float64   `json:"price"`
	SubCategory string    `json:"subCategory" gorm:"index"`
	Rating      float64   `json:"rating"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToyView is the projection returned by the toy details endpoint.
type ToyView struct {
	ID          string  `json:"_id"`
	Picture     string  `json:"picture"`
	ToyName     string  `json:"toyName"`
	SellerName  string  `json:"sellerName"`
	SellerEmail string  `json:"sellerEmail"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	SubCategory string  `json:"subCategory"`
}

// View projects the toy onto the detail field set.
func (t *Toy) View() *ToyView {
	if t == nil {
		return nil
	}
	return &ToyView{
		ID:          t.ID,
		Picture:     t.Picture,
		ToyName:     t.ToyName,
		SellerName:  t.SellerName,
		SellerEmail: t.SellerEmail,
		Price:       t.Price,
		Rating:      t.Rating,
		Quantity:    t.Quantity,
		Description: t.Description,
		SubCategory: t.SubCategory,
	}
}

// ToyInput is the request body accepted by the create and update endpoints.
// Unknown fields, including any client supplied id, are ignored.
type ToyInput struct {
	ToyName     string  `json:"toyName"`
	Picture     string  `json:"picture"`
	SellerName  string  `json:"sellerName"`
	SellerEmail string  `json:"sellerEmail"`
	Price       float64 `json:"price"`
	SubCategory string  `json:"subCategory"`
	Rating      float64 `json:"rating"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
}

// Toy builds a record without an identifier from the input.
func (in ToyInput) Toy() Toy {
	return Toy{
		ToyName:     in.ToyName,
		Picture:     in.Picture,
		SellerName:  in.SellerName,
		SellerEmail: in.SellerEmail,
		Price:       in.Price,
		SubCategory: in.SubCategory,
		Rating:      in.Rating,
		Quantity:    in.Quantity,
		Description: in.Description,
	}
}

// Apply overwrites the nine settable fields of t with the input values.
func (in ToyInput) Apply(t *Toy) {
	t.ToyName = in.ToyName
	t.Picture = in.Picture
	t.SellerName = in.SellerName
	t.SellerEmail = in.SellerEmail
	t.Price = in.Price
	t.SubCategory = in.SubCategory
	t.Rating = in.Rating
	t.Quantity = in.Quantity
	t.Description = in.Description
}
