package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/domain/model"
	"github.com/polkiloo/authkeeper/internal/domain/repository"
)

const usersCollection = "users"

type userCollection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

// userDocument keeps the field names of the existing users collection.
type userDocument struct {
	ID          bson.ObjectID `bson:"_id"`
	Names       string        `bson:"nombres"`
	Surnames    string        `bson:"apellidos"`
	BirthDate   *time.Time    `bson:"fechaNacimiento,omitempty"`
	Sex         string        `bson:"sexo"`
	CivilStatus string        `bson:"estadoCivil"`
	NationalID  string        `bson:"rut"`
	Address     string        `bson:"direccion"`
	JobTitle    string        `bson:"cargo"`
	Email       string        `bson:"email"`
	Phone       string        `bson:"telefono"`
	Password    string        `bson:"password"`
	IsAdmin     bool          `bson:"isAdmin"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

// Storage is a repository facade backed by MongoDB.
type Storage struct {
	client *mongo.Client
	users  userCollection
	logger *slog.Logger
	now    func() time.Time
}

type userRepository struct {
	storage *Storage
}

// New connects to MongoDB, verifies connectivity and ensures the unique email index.
func New(ctx context.Context, uri, database string, logger *slog.Logger) (*Storage, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	collection := client.Database(database).Collection(usersCollection)
	if err := ensureIndexes(ctx, collection); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	logger.Info("mongo storage ready", slog.String("database", database))
	return &Storage{client: client, users: collection, logger: logger, now: time.Now}, nil
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Close disconnects the client.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	doc := toDocument(user)
	doc.ID = bson.NewObjectID()
	doc.CreatedAt = r.storage.now().UTC().Truncate(time.Millisecond)

	if _, err := r.storage.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	var doc userDocument
	if err := r.storage.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func toDocument(u *model.User) userDocument {
	return userDocument{
		Names:       u.Names,
		Surnames:    u.Surnames,
		BirthDate:   u.BirthDate,
		Sex:         u.Sex,
		CivilStatus: u.CivilStatus,
		NationalID:  u.NationalID,
		Address:     u.Address,
		JobTitle:    u.JobTitle,
		Email:       u.Email,
		Phone:       u.Phone,
		Password:    u.PasswordHash,
		IsAdmin:     u.IsAdmin,
	}
}

func (d userDocument) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Names:        d.Names,
		Surnames:     d.Surnames,
		BirthDate:    d.BirthDate,
		Sex:          d.Sex,
		CivilStatus:  d.CivilStatus,
		NationalID:   d.NationalID,
		Address:      d.Address,
		JobTitle:     d.JobTitle,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.Password,
		IsAdmin:      d.IsAdmin,
		CreatedAt:    d.CreatedAt,
	}
}
