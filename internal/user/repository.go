package user

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"petcare-api/pkg/cerror"
	"petcare-api/pkg/config"
)

type Repository interface {
	InsertUser(ctx context.Context, user *Document) (string, error)
	FindUserWithId(ctx context.Context, userId string) (*Document, error)
	FindUserWithEmail(ctx context.Context, email string) (*Document, error)
	FindUserWithRefreshToken(ctx context.Context, refreshToken string) (*Document, error)
	UpdateUserById(ctx context.Context, userId string, update *DocumentUpdate) error
}

type repository struct {
	mongodbClient *mongo.Client
	mongodbConfig config.MongodbConfig
}

func NewRepository(mongodbClient *mongo.Client, mongodbConfig config.MongodbConfig) Repository {
	return &repository{
		mongodbClient: mongodbClient,
		mongodbConfig: mongodbConfig,
	}
}

func (r *repository) userCollection() *mongo.Collection {
	return r.mongodbClient.
		Database(r.mongodbConfig.Database).
		Collection(r.mongodbConfig.Collections[config.MongodbUserCollection])
}

func (r *repository) InsertUser(ctx context.Context, user *Document) (string, error) {
	collection := r.userCollection()

	var foundUser bson.D
	filter := bson.D{{Key: "email", Value: user.Email}}
	err := collection.FindOne(ctx, &filter).Decode(&foundUser)
	if err != nil && err != mongo.ErrNoDocuments {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while user existing check",
			zap.Error(err),
		)
	}

	if len(foundUser) > 0 {
		cerr := cerror.ErrorUserAlreadyExists
		return "", &cerr
	}

	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while insert user",
			zap.Error(err),
		)
	}

	userId, ok := result.InsertedID.(string)
	if !ok {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while type casting for user id",
		)
	}

	return userId, nil
}

func (r *repository) FindUserWithId(ctx context.Context, userId string) (*Document, error) {
	var user Document

	filter := bson.D{{Key: "_id", Value: userId}}
	err := r.userCollection().FindOne(ctx, &filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			cerr := cerror.ErrorUserNotFound
			return nil, &cerr
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find user with id",
			zap.Error(err),
		)
	}

	return &user, nil
}

func (r *repository) FindUserWithEmail(ctx context.Context, email string) (*Document, error) {
	var user Document

	filter := bson.D{{Key: "email", Value: email}}
	err := r.userCollection().FindOne(ctx, &filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			cerr := cerror.ErrorUserNotFound
			return nil, &cerr
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find user with email",
			zap.Error(err),
		)
	}

	return &user, nil
}

// FindUserWithRefreshToken resolves the at-most-one user currently holding
// the claimed refresh token. A token superseded by a later login matches
// nothing and surfaces as unauthorized.
func (r *repository) FindUserWithRefreshToken(ctx context.Context, refreshToken string) (*Document, error) {
	var user Document

	filter := bson.D{{Key: "refreshToken", Value: refreshToken}}
	err := r.userCollection().FindOne(ctx, &filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			cerr := cerror.ErrorInvalidRefreshToken
			return nil, &cerr
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find user with refresh token",
			zap.Error(err),
		)
	}

	return &user, nil
}

func (r *repository) UpdateUserById(ctx context.Context, userId string, update *DocumentUpdate) error {
	fields := bson.D{}
	if update.Name != "" {
		fields = append(fields, bson.E{Key: "name", Value: update.Name})
	}
	if update.Location != "" {
		fields = append(fields, bson.E{Key: "location", Value: update.Location})
	}
	if update.ProfilePhoto != "" {
		fields = append(fields, bson.E{Key: "profilePhoto", Value: update.ProfilePhoto})
	}
	if update.RefreshToken != "" {
		fields = append(fields, bson.E{Key: "refreshToken", Value: update.RefreshToken})
	}

	if len(fields) == 0 {
		return nil
	}

	filter := bson.D{{Key: "_id", Value: userId}}
	result, err := r.userCollection().UpdateOne(ctx, &filter, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while update user",
			zap.Error(err),
		)
	}

	if result.MatchedCount == 0 {
		cerr := cerror.ErrorUserNotFound
		return &cerr
	}

	return nil
}
