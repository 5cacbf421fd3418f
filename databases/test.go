package databases

// go generate: mockery --name TestDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const testName = "tests"

// TestDatabase contains the methods to use with the tests database
type TestDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Test, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Test, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type testDatabase struct {
	db DatabaseHelper
}

// NewTestDatabase initializes a new instance of test database with the provided db connection
func NewTestDatabase(db DatabaseHelper) TestDatabase {
	return &testDatabase{
		db: db,
	}
}

func (t *testDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Test, error) {
	test := &models.Test{}
	err := t.db.Collection(testName).FindOne(ctx, filter, opts...).Decode(&test)
	if err != nil {
		return nil, err
	}
	return test, nil
}

func (t *testDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Test, error) {
	var tests []models.Test
	curr := t.db.Collection(testName).Find(ctx, filter, opts...)
	err := curr.All(ctx, &tests)
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (t *testDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := t.db.Collection(testName).InsertOne(ctx, document, opts...)
	return res, nil
}

func (t *testDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := t.db.Collection(testName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (t *testDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return t.db.Collection(testName).DeleteOne(ctx, filter, opts...)
}
