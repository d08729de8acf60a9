// Package mongo stores users as documents, with the pending verification
// codes embedded in the user document as updateCode and resetCode.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artem13815/fintrack/pkg/auth"
)

const DefaultCollection = "users"

type codeDocument struct {
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

type userDocument struct {
	ID           string        `bson:"_id"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash"`
	FullName     string        `bson:"fullName"`
	UpdateCode   *codeDocument `bson:"updateCode,omitempty"`
	ResetCode    *codeDocument `bson:"resetCode,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

func (d userDocument) user() (auth.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return auth.User{}, fmt.Errorf("decode user id %q: %w", d.ID, err)
	}
	return auth.User{
		ID:           id,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}, nil
}

// UserRepository implements auth.UserRepository and auth.CodeStore on one collection.
type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &UserRepository{coll: db.Collection(collection), now: time.Now}
}

// EnsureIndexes creates the unique e-mail index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	doc := userDocument{
		ID:           user.ID.String(),
		Email:        strings.ToLower(user.Email),
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	doc, err := r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
	if err != nil {
		return auth.User{}, err
	}
	return doc.user()
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	doc, err := r.findOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return auth.User{}, err
	}
	return doc.user()
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": updatedAt}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SaveCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code auth.VerificationCode) error {
	field, err := codeField(purpose)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		bson.M{"$set": bson.M{
			field:       codeDocument{Code: code.Code, ExpiresAt: code.ExpiresAt},
			"updatedAt": r.now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose) (auth.VerificationCode, error) {
	field, err := codeField(purpose)
	if err != nil {
		return auth.VerificationCode{}, err
	}
	doc, err := r.findOne(ctx, bson.M{"_id": userID.String()}, options.FindOne().SetProjection(bson.M{field: 1}))
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return auth.VerificationCode{}, auth.ErrNoPendingRequest
		}
		return auth.VerificationCode{}, err
	}
	slot := doc.UpdateCode
	if purpose == auth.PurposeReset {
		slot = doc.ResetCode
	}
	if slot == nil {
		return auth.VerificationCode{}, auth.ErrNoPendingRequest
	}
	return auth.VerificationCode{Code: slot.Code, ExpiresAt: slot.ExpiresAt.UTC()}, nil
}

func (r *UserRepository) ConsumeCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code string) error {
	field, err := codeField(purpose)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID.String(), field + ".code": code},
		bson.M{
			"$unset": bson.M{field: ""},
			"$set":   bson.M{"updatedAt": r.now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrNoPendingRequest
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (userDocument, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return userDocument{}, auth.ErrNotFound
		}
		return userDocument{}, fmt.Errorf("find user: %w", err)
	}
	return doc, nil
}

func codeField(purpose auth.CodePurpose) (string, error) {
	switch purpose {
	case auth.PurposeUpdate:
		return "updateCode", nil
	case auth.PurposeReset:
		return "resetCode", nil
	default:
		return "", fmt.Errorf("unknown code purpose %q", purpose)
	}
}
