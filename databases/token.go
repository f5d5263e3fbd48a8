package databases

// go generate: mockery --name TokenDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const tokenName = "tokens"

// TokenDatabase contains the methods to use with the token database
type TokenDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Token, error)
	InsertOne(ctx context.Context, token models.Token) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type tokenDatabase struct {
	db DatabaseHelper
}

// NewTokenDatabase initializes a new instance of token database with the provided db connection
func NewTokenDatabase(db DatabaseHelper) TokenDatabase {
	return &tokenDatabase{
		db: db,
	}
}

func (t *tokenDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Token, error) {
	token := &models.Token{}
	err := t.db.Collection(tokenName).FindOne(ctx, filter, opts...).Decode(&token)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (t *tokenDatabase) InsertOne(ctx context.Context, token models.Token) (InsertOneResultHelper, error) {
	res, err := t.db.Collection(tokenName).InsertOne(ctx, token)
	return res, err
}

func (t *tokenDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return t.db.Collection(tokenName).DeleteOne(ctx, filter, opts...)
}
