package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

const collectionAuthors = "authors"

// AuthorRepository implements ports.AuthorRepository on MongoDB.
type AuthorRepository struct {
	col *mongo.Collection
}

func NewAuthorRepository(db *mongo.Database) *AuthorRepository {
	return &AuthorRepository{col: db.Collection(collectionAuthors)}
}

type mongoAuthor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
}

func (a mongoAuthor) toDomain() *domain.Author {
	return &domain.Author{
		ID:        a.ID.Hex(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func (r *AuthorRepository) Create(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoAuthor{
		FirstName: author.FirstName,
		LastName:  author.LastName,
	})
	if err != nil {
		return nil, fmt.Errorf("insert author: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return &domain.Author{ID: id.Hex(), FirstName: author.FirstName, LastName: author.LastName}, nil
}

func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*domain.Author, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAuthorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAuthor
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AuthorRepository) FindByName(ctx context.Context, firstName, lastName string) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAuthor
	filter := bson.M{"firstName": firstName, "lastName": lastName}
	if err := r.col.FindOne(ctx, filter).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by name: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AuthorRepository) Update(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	oid, err := primitive.ObjectIDFromHex(author.ID)
	if err != nil {
		return nil, domain.ErrAuthorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"firstName": author.FirstName, "lastName": author.LastName}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAuthor
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("update author: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAuthorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAuthorNotFound
	}
	return nil
}

func ensureAuthorIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionAuthors).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}},
	})
	return err
}
