package databases

// go generate: mockery --name QuestionDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const questionName = "questions"

// QuestionDatabase contains the methods to use with the test questions database
type QuestionDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TestQuestion, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type questionDatabase struct {
	db DatabaseHelper
}

// NewQuestionDatabase initializes a new instance of question database with the provided db connection
func NewQuestionDatabase(db DatabaseHelper) QuestionDatabase {
	return &questionDatabase{
		db: db,
	}
}

func (q *questionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TestQuestion, error) {
	var questions []models.TestQuestion
	curr := q.db.Collection(questionName).Find(ctx, filter, opts...)
	err := curr.All(ctx, &questions)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *questionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return q.db.Collection(questionName).CountDocuments(ctx, filter, opts...)
}

func (q *questionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := q.db.Collection(questionName).InsertOne(ctx, document, opts...)
	return res, nil
}

func (q *questionDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return q.db.Collection(questionName).DeleteOne(ctx, filter, opts...)
}
