package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
)

// UserStore handles user CRUD in MongoDB.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

// EnsureIndexes creates the unique username/email indexes if they don't exist.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}
	return nil
}

// CreateUser inserts the user and fills in its generated id.
func (s *UserStore) CreateUser(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now()
	if u.Collection == nil {
		u.Collection = []string{}
	}
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("mongo insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetProfileImage updates the user's profile image URL.
func (s *UserStore) SetProfileImage(ctx context.Context, id, url string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"profile_image": url}})
	if err != nil {
		return fmt.Errorf("mongo set profile image: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddToCollection appends gameID to the user's collection and returns the
// updated list. The membership guard lives in the filter, so the whole
// operation is a single document write and two concurrent adds can never
// both slip past the duplicate check.
func (s *UserStore) AddToCollection(ctx context.Context, id, gameID string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.M{"_id": oid, "collection": bson.M{"$ne": gameID}}
	update := bson.M{"$addToSet": bson.M{"collection": gameID}}

	var u models.User
	err = s.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("mongo add to collection: %w", err)
	}
	return u.Collection, nil
}

// RemoveFromCollection pulls gameID from the user's collection and returns
// the updated list.
func (s *UserStore) RemoveFromCollection(ctx context.Context, id, gameID string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.M{"_id": oid, "collection": gameID}
	update := bson.M{"$pull": bson.M{"collection": gameID}}

	var u models.User
	err = s.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("mongo remove from collection: %w", err)
	}
	if u.Collection == nil {
		u.Collection = []string{}
	}
	return u.Collection, nil
}
