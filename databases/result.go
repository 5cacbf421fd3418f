package databases

// go generate: mockery --name ResultDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const resultName = "results"

// ResultDatabase contains the methods to use with the test results database
type ResultDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.TestResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TestResult, error)
	// ReplaceOne upserts so a re-submission overwrites the previous result for the
	// same (testID, studentID) pair instead of inserting a second row.
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type resultDatabase struct {
	db DatabaseHelper
}

// NewResultDatabase initializes a new instance of result database with the provided db connection
func NewResultDatabase(db DatabaseHelper) ResultDatabase {
	return &resultDatabase{
		db: db,
	}
}

func (r *resultDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.TestResult, error) {
	result := &models.TestResult{}
	err := r.db.Collection(resultName).FindOne(ctx, filter, opts...).Decode(&result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *resultDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TestResult, error) {
	var results []models.TestResult
	curr := r.db.Collection(resultName).Find(ctx, filter, opts...)
	err := curr.All(ctx, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultDatabase) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) error {
	_, err := r.db.Collection(resultName).ReplaceOne(ctx, filter, replacement, opts...)
	return err
}

func (r *resultDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return r.db.Collection(resultName).DeleteOne(ctx, filter, opts...)
}
