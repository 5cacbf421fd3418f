package databases

// go generate: mockery --name ClassDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const className = "classes"

// ClassDatabase contains the methods to use with the class database
type ClassDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Class, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Class, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type classDatabase struct {
	db DatabaseHelper
}

// NewClassDatabase initializes a new instance of class database with the provided db connection
func NewClassDatabase(db DatabaseHelper) ClassDatabase {
	return &classDatabase{
		db: db,
	}
}

func (c *classDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Class, error) {
	class := &models.Class{}
	err := c.db.Collection(className).FindOne(ctx, filter, opts...).Decode(&class)
	if err != nil {
		return nil, err
	}
	return class, nil
}

func (c *classDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Class, error) {
	var classes []models.Class
	curr := c.db.Collection(className).Find(ctx, filter, opts...)
	err := curr.All(ctx, &classes)
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (c *classDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := c.db.Collection(className).InsertOne(ctx, document, opts...)
	return res, nil
}

func (c *classDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(className).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *classDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(className).DeleteOne(ctx, filter, opts...)
}
