package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/pointsledger/referral-backend/internal/apperrors"
	"github.com/pointsledger/referral-backend/internal/models"
	"github.com/pointsledger/referral-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for the users collection
type UserRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewUserRepository creates a new UserRepository. Every store call is bounded
// by timeout unless the caller's context carries an earlier deadline.
func NewUserRepository(db *mongo.Database, timeout time.Duration) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		timeout:    timeout,
	}
}

// withDeadline bounds a store call. Session contexts created by
// RunTransaction pass through untouched so the transaction owns its deadline.
func (r *UserRepository) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// FindByUserID finds a user by id. Absence is reported as (nil, nil).
func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	var user models.User
	filter := bson.M{"_id": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find user", err)
	}
	return &user, nil
}

// Upsert merge-writes the username for a user, creating the document if absent.
func (r *UserRepository) Upsert(ctx context.Context, userID, username string) (*models.User, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set":         bson.M{"username": username, "lastUpdated": now},
		"$setOnInsert": bson.M{"points": int64(0), "referralCount": int64(0), "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, storeError("upsert user", err)
	}
	return &user, nil
}

// IncrementPoints atomically increments the balance and returns the new value.
// The $inc primitive makes concurrent increments on the same user commute, so
// no update is lost.
func (r *UserRepository) IncrementPoints(ctx context.Context, userID string, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "points delta must be positive")
	}

	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$inc":         bson.M{"points": delta},
		"$set":         bson.M{"lastUpdated": now},
		"$setOnInsert": bson.M{"referralCount": int64(0), "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return 0, storeError("increment points", err)
	}
	return user.Points, nil
}

// TopByPoints returns up to limit users with a positive balance, ranked by
// points descending with user id ascending as the tie-break.
func (r *UserRepository) TopByPoints(ctx context.Context, limit int) ([]*models.User, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	filter := bson.M{"points": bson.M{"$gt": 0}}
	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("query leaderboard", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, storeError("read leaderboard", err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// RunTransaction executes fn inside a Mongo multi-document transaction with
// snapshot reads and majority writes. The driver re-runs fn with fresh reads
// when a concurrent commit invalidates what it read.
func (r *UserRepository) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return storeError("start session", err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txnOpts)
	return err
}

// SetReferredBy marks the referred user's document, creating it if absent.
func (r *UserRepository) SetReferredBy(ctx context.Context, userID, referrerID string) error {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set":         bson.M{"referredBy": referrerID, "referralTimestamp": now, "lastUpdated": now},
		"$setOnInsert": bson.M{"points": int64(0), "referralCount": int64(0), "createdAt": now},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return storeError("set referred_by", err)
	}
	return nil
}

// CreditReferral awards the bonus and bumps the referral counter in one write.
func (r *UserRepository) CreditReferral(ctx context.Context, referrerID string, bonus int64) (int64, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"_id": referrerID}
	update := bson.M{
		"$inc":         bson.M{"points": bonus, "referralCount": int64(1)},
		"$set":         bson.M{"lastUpdated": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return 0, storeError("credit referral", err)
	}
	return user.ReferralCount, nil
}

// storeError classifies driver failures as transient so the services' retry
// layer can act on them.
func storeError(op string, err error) error {
	return apperrors.Wrap(apperrors.CodeUnavailable, op+" failed", err)
}
