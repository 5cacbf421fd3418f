package databases

// go generate: mockery --name CommentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const commentName = "livecomments"

// CommentDatabase contains the methods to use with the live comments database
type CommentDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.LiveComment, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LiveComment, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type commentDatabase struct {
	db DatabaseHelper
}

// NewCommentDatabase initializes a new instance of comment database with the provided db connection
func NewCommentDatabase(db DatabaseHelper) CommentDatabase {
	return &commentDatabase{
		db: db,
	}
}

func (c *commentDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.LiveComment, error) {
	comment := &models.LiveComment{}
	err := c.db.Collection(commentName).FindOne(ctx, filter, opts...).Decode(&comment)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (c *commentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LiveComment, error) {
	var comments []models.LiveComment
	curr := c.db.Collection(commentName).Find(ctx, filter, opts...)
	err := curr.All(ctx, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *commentDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(commentName).CountDocuments(ctx, filter, opts...)
}

func (c *commentDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := c.db.Collection(commentName).InsertOne(ctx, document, opts...)
	return res, nil
}

func (c *commentDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(commentName).DeleteOne(ctx, filter, opts...)
}
