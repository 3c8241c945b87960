package post

import (
	"context"
	"errors"
	"fmt"

	"ascended/pkg/logger"
)

type (
	IPostDeleter interface {
		Delete(context.Context, string) error
	}

	IEngagementPurger interface {
		PurgePost(ctx context.Context, postId string) error
	}

	// Remover takes a post down together with its engagements.
	Remover struct {
		Posts       IPostDeleter
		Engagements IEngagementPurger
	}
)

func NewRemover(posts IPostDeleter, engagements IEngagementPurger) *Remover {
	return &Remover{Posts: posts, Engagements: engagements}
}

// RemovePost is idempotent: a post that is already gone still gets its
// engagements purged and energy refunded.
func (rm *Remover) RemovePost(ctx context.Context, postId string) error {
	err := rm.Posts.Delete(ctx, postId)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("post/remover: %w", err)
	}
	if err := rm.Engagements.PurgePost(ctx, postId); err != nil {
		return fmt.Errorf("post/remover: %w", err)
	}
	logger.Log(ctx).Infof("post %s removed", postId)
	return nil
}
