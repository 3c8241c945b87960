package post

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ascended/pkg/comment"
)

type Repo struct {
	posts IMongoCollection
}

func NewPostRepo(postsCol *mongo.Collection) *Repo {
	return &Repo{
		posts: &MongoCollection{Coll: postsCol},
	}
}

// Filter narrows the feed. Zero values match everything.
type Filter struct {
	Chakra   Chakra
	AuthorId string
}

func (f Filter) bson() bson.D {
	res := bson.D{}
	if f.Chakra != "" {
		res = append(res, bson.E{Key: "chakra", Value: f.Chakra})
	}
	if f.AuthorId != "" {
		res = append(res, bson.E{Key: "author.id", Value: f.AuthorId})
	}
	return res
}

func (r *Repo) Add(ctx context.Context, p *Post) (string, error) {
	if p.Comments == nil {
		p.Comments = []*comment.Comment{}
	}
	if _, err := r.posts.InsertOne(ctx, p); err != nil {
		return ``, fmt.Errorf("post/repo: failed inserting a post: %w", err)
	}
	return p.Id, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("post/repo: failed deleting post: %w", err)
	}
	if res.Deleted() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) GetById(ctx context.Context, id string) (*Post, error) {
	p := new(Post)
	err := r.posts.FindOne(ctx, bson.M{"id": id}).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("post/repo: failed finding post %s: %w", id, err)
	}
	return p, nil
}

func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.GetById(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// GetAll returns the feed, newest first.
func (r *Repo) GetAll(ctx context.Context, f Filter) ([]*Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.posts.Find(ctx, f.bson(), opts)
	if err != nil {
		return nil, fmt.Errorf("post/repo: failed finding posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("post/repo: failed geting posts from cursor: %w", err)
	}
	return posts, nil
}

// AddComment appends the comment to the thread of c.PostId.
func (r *Repo) AddComment(ctx context.Context, c *comment.Comment) error {
	filter := bson.D{{Key: "id", Value: c.PostId}}
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "comments", Value: c}}}}
	res, err := r.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("post/repo: failed pushing comment: %w", err)
	}
	if res.Matched() == 0 {
		return ErrNotFound
	}
	return nil
}

// Comments returns the thread in insertion order.
func (r *Repo) Comments(ctx context.Context, postId string) ([]*comment.Comment, error) {
	p, err := r.GetById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if p.Comments == nil {
		return []*comment.Comment{}, nil
	}
	return p.Comments, nil
}
