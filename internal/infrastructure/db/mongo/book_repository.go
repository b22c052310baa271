package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

const collectionBooks = "books"

// BookRepository implements ports.BookRepository on MongoDB. The lending
// transitions are single conditional updates so the state check and the write
// cannot interleave with a concurrent request.
type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

type mongoBook struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	Title         string              `bson:"title"`
	Description   string              `bson:"description"`
	Publisher     string              `bson:"publisher"`
	ISBN          string              `bson:"isbn"`
	PublishedDate time.Time           `bson:"published_date"`
	Authors       []mongoAuthor       `bson:"authors"`
	Category      domain.BookCategory `bson:"category"`
	Status        domain.BookStatus   `bson:"status"`
	BorrowerID    string              `bson:"borrower_id"`
	BorrowedDate  *time.Time          `bson:"borrowed_date,omitempty"`
	ReturnDate    *time.Time          `bson:"return_date,omitempty"`
}

func toMongoBook(b *domain.Book) mongoBook {
	authors := make([]mongoAuthor, len(b.Authors))
	for i, a := range b.Authors {
		oid, _ := primitive.ObjectIDFromHex(a.ID)
		authors[i] = mongoAuthor{ID: oid, FirstName: a.FirstName, LastName: a.LastName}
	}
	return mongoBook{
		Title:         b.Title,
		Description:   b.Description,
		Publisher:     b.Publisher,
		ISBN:          b.ISBN,
		PublishedDate: b.PublishedDate.UTC(),
		Authors:       authors,
		Category:      b.Category,
		Status:        b.Status,
		BorrowerID:    b.BorrowerID,
		BorrowedDate:  b.BorrowedDate,
		ReturnDate:    b.ReturnDate,
	}
}

func (b mongoBook) toDomain() *domain.Book {
	authors := make([]domain.Author, len(b.Authors))
	for i, a := range b.Authors {
		authors[i] = *a.toDomain()
	}
	borrower := b.BorrowerID
	if borrower == "" {
		borrower = domain.NoBorrower
	}
	return &domain.Book{
		ID:            b.ID.Hex(),
		Title:         b.Title,
		Description:   b.Description,
		Publisher:     b.Publisher,
		ISBN:          b.ISBN,
		PublishedDate: b.PublishedDate,
		Authors:       authors,
		Category:      b.Category,
		Status:        b.Status,
		BorrowerID:    borrower,
		BorrowedDate:  b.BorrowedDate,
		ReturnDate:    b.ReturnDate,
	}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoBook(book))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrISBNExists
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBook
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBook
	if err := r.col.FindOne(ctx, bson.M{"isbn": isbn}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by isbn: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) FindAll(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "status", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*domain.Book
	for cursor.Next(ctx) {
		var mb mongoBook
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, mb.toDomain())
	}
	return books, cursor.Err()
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(book.ID)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	mb := toMongoBook(book)
	update := bson.M{"$set": bson.M{
		"title":          mb.Title,
		"description":    mb.Description,
		"publisher":      mb.Publisher,
		"isbn":           mb.ISBN,
		"published_date": mb.PublishedDate,
		"authors":        mb.Authors,
		"category":       mb.Category,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated mongoBook
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// Checkout performs the AVAILABLE -> BORROWED transition as one conditional
// update: the status filter makes concurrent checkouts of the same book
// mutually exclusive. A miss is disambiguated with a follow-up read.
func (r *BookRepository) Checkout(ctx context.Context, bookID, userID string, at time.Time) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": domain.StatusAvailable}
	update := bson.M{"$set": bson.M{
		"status":        domain.StatusBorrowed,
		"borrower_id":   userID,
		"borrowed_date": at.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mb mongoBook
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mb)
	if err == nil {
		return mb.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("checkout book: %w", err)
	}

	// No available book matched: unknown id or already borrowed.
	if _, findErr := r.FindByID(ctx, bookID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrBookAlreadyBorrowed
}

// Return performs the BORROWED -> AVAILABLE transition as one conditional
// update guarded on the expected borrower.
func (r *BookRepository) Return(ctx context.Context, bookID, borrowerID string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": domain.StatusBorrowed, "borrower_id": borrowerID}
	update := bson.M{
		"$set":   bson.M{"status": domain.StatusAvailable, "borrower_id": domain.NoBorrower},
		"$unset": bson.M{"borrowed_date": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mb mongoBook
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mb)
	if err == nil {
		return mb.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("return book: %w", err)
	}

	if _, findErr := r.FindByID(ctx, bookID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrBookNotBorrowed
}

func (r *BookRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"authors._id": oid})
	if err != nil {
		return 0, fmt.Errorf("count books by author: %w", err)
	}
	return n, nil
}

func ensureBookIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "isbn", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "authors._id", Value: 1}}},
	}
	_, err := db.Collection(collectionBooks).Indexes().CreateMany(ctx, indexes)
	return err
}
