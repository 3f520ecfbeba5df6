package repositories

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"toytopia/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// toyDocument is the stored shape of a toy.
type toyDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ToyName     string             `bson:"toyName"`
	Picture     string             `bson:"picture"`
	SellerName  string             `bson:"sellerName"`
	SellerEmail string             `bson:"sellerEmail"`
	Price       lenientFloat       `bson:"price"`
	SubCategory string             `bson:"subCategory"`
	Rating      lenientFloat       `bson:"rating"`
	Quantity    lenientInt         `bson:"quantity"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func (d toyDocument) toy() models.Toy {
	return models.Toy{
		ID:          d.ID.Hex(),
		ToyName:     d.ToyName,
		Picture:     d.Picture,
		SellerName:  d.SellerName,
		SellerEmail: d.SellerEmail,
		Price:       float64(d.Price),
		SubCategory: d.SubCategory,
		Rating:      float64(d.Rating),
		Quantity:    int(d.Quantity),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// lenientFloat decodes any numeric BSON value, or a numeric string, into a
// float64. Older documents store prices and ratings as strings.
type lenientFloat float64

func (f *lenientFloat) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v, err := decodeNumber(bson.RawValue{Type: t, Value: data})
	if err != nil {
		return err
	}
	*f = lenientFloat(v)
	return nil
}

// lenientInt is the integer counterpart of lenientFloat.
type lenientInt int

func (i *lenientInt) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v, err := decodeNumber(bson.RawValue{Type: t, Value: data})
	if err != nil {
		return err
	}
	*i = lenientInt(math.Round(v))
	return nil
}

func decodeNumber(rv bson.RawValue) (float64, error) {
	switch rv.Type {
	case bsontype.Double:
		return rv.Double(), nil
	case bsontype.Int32:
		return float64(rv.Int32()), nil
	case bsontype.Int64:
		return float64(rv.Int64()), nil
	case bsontype.Decimal128:
		return strconv.ParseFloat(rv.Decimal128().String(), 64)
	case bsontype.String:
		s := strings.TrimSpace(rv.StringValue())
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "decoding number %q", s)
		}
		return v, nil
	case bsontype.Null, bsontype.Undefined:
		return 0, nil
	default:
		return 0, errors.Errorf("cannot decode %s into a number", rv.Type)
	}
}

// toyProjection limits GetByID to the detail fields.
var toyProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "picture", Value: 1},
	{Key: "toyName", Value: 1},
	{Key: "sellerName", Value: 1},
	{Key: "sellerEmail", Value: 1},
	{Key: "price", Value: 1},
	{Key: "rating", Value: 1},
	{Key: "quantity", Value: 1},
	{Key: "description", Value: 1},
	{Key: "subCategory", Value: 1},
}

// MongoToyRepository stores toys in a MongoDB collection.
type MongoToyRepository struct {
	coll *mongo.Collection
}

// NewMongoToyRepository creates a repository over coll.
func NewMongoToyRepository(coll *mongo.Collection) *MongoToyRepository {
	return &MongoToyRepository{coll: coll}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func (r *MongoToyRepository) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Toy, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "finding toys")
	}

	var docs []toyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding toys")
	}

	toys := make([]models.Toy, 0, len(docs))
	for _, d := range docs {
		toys = append(toys, d.toy())
	}
	return toys, nil
}

// List returns up to limit toys in natural order.
func (r *MongoToyRepository) List(ctx context.Context, limit int64) ([]models.Toy, error) {
	return r.find(ctx, bson.M{}, options.Find().SetLimit(limit))
}

// GetByID returns the projected toy with the given ID, or nil if there is none.
func (r *MongoToyRepository) GetByID(ctx context.Context, id string) (*models.Toy, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc toyDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(toyProjection)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "finding toy '%s'", id)
	}

	toy := doc.toy()
	return &toy, nil
}

// FindByCategory returns every toy whose subCategory equals category.
func (r *MongoToyRepository) FindByCategory(ctx context.Context, category models.Category) ([]models.Toy, error) {
	return r.find(ctx, bson.M{"subCategory": string(category)})
}

// FindBySeller returns the toys of a seller, or every toy when email is empty.
func (r *MongoToyRepository) FindBySeller(ctx context.Context, email string) ([]models.Toy, error) {
	filter := bson.M{}
	if email != "" {
		filter["sellerEmail"] = email
	}
	return r.find(ctx, filter)
}

// Create inserts a new toy document.
func (r *MongoToyRepository) Create(ctx context.Context, toy *models.Toy) (*models.InsertResult, error) {
	now := time.Now().UTC()
	doc := toyDocument{
		ID:          primitive.NewObjectID(),
		ToyName:     toy.ToyName,
		Picture:     toy.Picture,
		SellerName:  toy.SellerName,
		SellerEmail: toy.SellerEmail,
		Price:       lenientFloat(toy.Price),
		SubCategory: toy.SubCategory,
		Rating:      lenientFloat(toy.Rating),
		Quantity:    lenientInt(toy.Quantity),
		Description: toy.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "inserting toy")
	}

	toy.ID = doc.ID.Hex()
	toy.CreatedAt = now
	toy.UpdatedAt = now
	return &models.InsertResult{Acknowledged: true, InsertedID: toy.ID}, nil
}

// Upsert sets the settable fields of a toy, inserting it when absent.
func (r *MongoToyRepository) Upsert(ctx context.Context, id string, input models.ToyInput) (*models.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"toyName":     input.ToyName,
			"picture":     input.Picture,
			"sellerName":  input.SellerName,
			"sellerEmail": input.SellerEmail,
			"price":       input.Price,
			"subCategory": input.SubCategory,
			"rating":      input.Rating,
			"quantity":    input.Quantity,
			"description": input.Description,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, errors.Wrapf(err, "updating toy '%s'", id)
	}

	result := &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		upserted := id
		if upsertedOID, ok := res.UpsertedID.(primitive.ObjectID); ok {
			upserted = upsertedOID.Hex()
		}
		result.UpsertedID = &upserted
	}
	return result, nil
}

// Delete removes the toy with the given ID.
func (r *MongoToyRepository) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, errors.Wrapf(err, "deleting toy '%s'", id)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Ping checks connectivity to the primary.
func (r *MongoToyRepository) Ping(ctx context.Context) error {
	return errors.Wrap(r.coll.Database().Client().Ping(ctx, readpref.Primary()), "pinging mongo")
}
