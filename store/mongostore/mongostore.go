// Package mongostore keeps products and users as documents in MongoDB, each
// user document carrying its cart as an embedded counter map.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxIDAttempts bounds how often CreateProduct retries after losing an id
// race to a concurrent insert.
const maxIDAttempts = 5

type Store struct {
	client   *mongo.Client
	products *mongo.Collection
	users    *mongo.Collection
}

var _ store.Store = (*Store)(nil)

type productDoc struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	ID        int                `bson:"id"`
	Name      string             `bson:"name"`
	Image     string             `bson:"image"`
	Category  string             `bson:"category"`
	NewPrice  float64            `bson:"new_price"`
	OldPrice  float64            `bson:"old_price"`
	Date      time.Time          `bson:"date"`
	Available bool               `bson:"available"`
}

type userDoc struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	CartData models.Cart        `bson:"cartData"`
	Date     time.Time          `bson:"date"`
}

// Open connects to uri, verifies the connection and ensures indexes.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		products: db.Collection("products"),
		users:    db.Collection("users"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Println("✅ Connected to MongoDB")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	if _, err := s.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		next := 1
		var last productDoc
		err := s.products.FindOne(ctx, bson.D{},
			options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}),
		).Decode(&last)
		switch {
		case err == nil:
			next = last.ID + 1
		case !errors.Is(err, mongo.ErrNoDocuments):
			return err
		}

		doc := toProductDoc(p)
		doc.ID = next
		if _, err := s.products.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return err
		}
		p.ID = next
		return nil
	}
	return fmt.Errorf("assign product id: gave up after %d attempts", maxIDAttempts)
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.findProducts(ctx, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
}

func (s *Store) RecentProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return s.findProducts(ctx, options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit)))
}

func (s *Store) findProducts(ctx context.Context, opts *options.FindOptions) ([]models.Product, error) {
	cur, err := s.products.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int) (bool, error) {
	res, err := s.products.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	res, err := s.users.InsertOne(ctx, userDoc{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		CartData: u.CartData,
		Date:     u.Date,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	u.ID = oid.Hex()
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return s.findUser(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *Store) findUser(ctx context.Context, filter bson.D) (*models.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) AdjustCartItem(ctx context.Context, userID, itemID string, delta int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, store.ErrNotFound
	}
	field := cartField(itemID)
	after := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: field, Value: 1}})

	filter := bson.D{{Key: "_id", Value: oid}}
	if delta < 0 {
		filter = append(filter, bson.E{Key: field, Value: bson.D{{Key: "$gte", Value: -delta}}})
	}

	var doc userDoc
	err = s.users.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$inc", Value: bson.D{{Key: field, Value: delta}}}},
		after,
	).Decode(&doc)
	if err == nil {
		return doc.CartData[itemID], nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}
	if delta >= 0 {
		return 0, store.ErrNotFound
	}

	// Decrement would go below zero: clamp the slot instead.
	res, err := s.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: field, Value: 0}}}},
	)
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 0 {
		return 0, store.ErrNotFound
	}
	return 0, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func cartField(itemID string) string {
	return "cartData." + itemID
}

func toProductDoc(p *models.Product) productDoc {
	return productDoc{
		ID:        p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		NewPrice:  p.NewPrice,
		OldPrice:  p.OldPrice,
		Date:      p.Date,
		Available: p.Available,
	}
}

func (d productDoc) toModel() models.Product {
	return models.Product{
		ID:        d.ID,
		Name:      d.Name,
		Image:     d.Image,
		Category:  d.Category,
		NewPrice:  d.NewPrice,
		OldPrice:  d.OldPrice,
		Date:      d.Date,
		Available: d.Available,
	}
}

func (d userDoc) toModel() *models.User {
	cart := d.CartData
	if cart == nil {
		cart = models.Cart{}
	}
	return &models.User{
		ID:       d.ObjectID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		CartData: cart,
		Date:     d.Date,
	}
}
