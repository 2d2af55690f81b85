package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindcheck/internal/model"
)

// ErrDuplicateEmail is returned by Create when the email index rejects the insert
var ErrDuplicateEmail = errors.New("admin email already exists")

// AdminRepo handles MongoDB operations for admin accounts
type AdminRepo interface {
	Create(ctx context.Context, admin *model.AdminAccount) error
	GetByID(ctx context.Context, id string) (*model.AdminAccount, error)
	GetByEmail(ctx context.Context, email string) (*model.AdminAccount, error)
	List(ctx context.Context) ([]model.AdminSummary, error)
	// UpdateStatus returns false when no account has the given id
	UpdateStatus(ctx context.Context, id string, status model.AdminStatus, reviewerID string) (bool, error)
}

type adminRepo struct {
	collection *mongo.Collection
}

// NewAdminRepo creates a new admin repository
func NewAdminRepo(db *mongo.Database) AdminRepo {
	return &adminRepo{
		collection: db.Collection(AdminsCollection),
	}
}

func (r *adminRepo) Create(ctx context.Context, admin *model.AdminAccount) error {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, admin)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid.Hex()
	}
	return nil
}

// GetByID returns nil, nil when the account does not exist or the id is not an ObjectID
func (r *adminRepo) GetByID(ctx context.Context, id string) (*model.AdminAccount, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminAccount, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *adminRepo) findOne(ctx context.Context, filter bson.M) (*model.AdminAccount, error) {
	var admin model.AdminAccount
	err := r.collection.FindOne(ctx, filter).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) List(ctx context.Context) ([]model.AdminSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"email": 1, "status": 1, "createdAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	admins := []model.AdminSummary{}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepo) UpdateStatus(ctx context.Context, id string, status model.AdminStatus, reviewerID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"reviewedAt": time.Now().UTC(),
		"reviewedBy": reviewerID,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
