package databases

// go generate: mockery --name EnrollmentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const enrollmentName = "enrollments"

// EnrollmentDatabase contains the methods to use with the enrollments database
type EnrollmentDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Enrollment, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Enrollment, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type enrollmentDatabase struct {
	db DatabaseHelper
}

// NewEnrollmentDatabase initializes a new instance of enrollment database with the provided db connection
func NewEnrollmentDatabase(db DatabaseHelper) EnrollmentDatabase {
	return &enrollmentDatabase{
		db: db,
	}
}

func (e *enrollmentDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{}
	err := e.db.Collection(enrollmentName).FindOne(ctx, filter, opts...).Decode(&enrollment)
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (e *enrollmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	curr := e.db.Collection(enrollmentName).Find(ctx, filter, opts...)
	err := curr.All(ctx, &enrollments)
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (e *enrollmentDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return e.db.Collection(enrollmentName).CountDocuments(ctx, filter, opts...)
}

func (e *enrollmentDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := e.db.Collection(enrollmentName).InsertOne(ctx, document, opts...)
	return res, nil
}

func (e *enrollmentDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return e.db.Collection(enrollmentName).DeleteOne(ctx, filter, opts...)
}
