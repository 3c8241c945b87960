package main

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"go.uber.org/zap"

	"ascended/pkg/comment"
	. "ascended/pkg/common"
	"ascended/pkg/engagement"
	"ascended/pkg/post"
	"ascended/pkg/user"
)

const seedEnergy = 100

var (
	f             = faker.New()
	onePassForAll = HashPass("sdfsdfsdf", RandStringRunes(8)) // salt must have len of 8
)

type (
	seedUsers interface {
		Add(context.Context, *user.User) (string, error)
		GetAll(context.Context) ([]*user.User, error)
	}
	seedPosts interface {
		Add(context.Context, *post.Post) (string, error)
	}
	seedEngagements interface {
		Add(context.Context, *engagement.Engagement) error
	}
)

func createAuthors(ctx context.Context, users seedUsers) {
	// Accounts for experiments, not random
	for _, u := range []*user.User{
		{Username: "pike", Role: user.RoleUser},
		{Username: "keeper", Role: user.RoleModerator},
	} {
		u.Password = onePassForAll
		u.Energy = seedEnergy
		if _, err := users.Add(ctx, u); err != nil {
			zap.S().Fatalf("seed: can't create default user %s: %v", u.Username, err)
		}
	}
	for i := 0; i < 5; i++ {
		genUser(ctx, users)
	}
}

func seed(ctx context.Context, users seedUsers, posts seedPosts, engagements seedEngagements) {
	authors, err := users.GetAll(ctx)
	if err != nil {
		zap.S().Fatalf("seed: can't get all authors: %v", err)
	}
	if len(authors) == 0 {
		createAuthors(ctx, users)
		if authors, err = users.GetAll(ctx); err != nil {
			zap.S().Fatalf("seed: can't get all authors: %v", err)
		}
	}

	for i := 0; i <= 5; i++ {
		p := genPost(authors)
		if _, err := posts.Add(ctx, p); err != nil {
			zap.S().Fatalf("seed: can't add post: %v", err)
		}
		genEngagements(ctx, engagements, authors, p.Id)
	}
	zap.S().Infof("seed: added posts for %d users", len(authors))
}

func genUser(ctx context.Context, users seedUsers) {
	u := user.User{
		Username: strings.ToLower(f.Person().FirstName()) + RandStringRunes(3),
		Password: onePassForAll,
		Role:     user.RoleUser,
		Energy:   seedEnergy,
	}
	if _, err := users.Add(ctx, &u); err != nil {
		zap.S().Fatalf("seed: can't add user: %v", err)
	}
}

func genEngagements(ctx context.Context, engagements seedEngagements, users []*user.User, postId string) {
	for _, u := range users {
		t := engagement.Types[rand.Intn(len(engagement.Types))]
		e := &engagement.Engagement{UserId: u.Id, PostId: postId, Type: t}
		if t == engagement.Energy {
			e.Amount = rand.Intn(10) + 1
		}
		err := engagements.Add(ctx, e)
		if err != nil && !errors.Is(err, engagement.ErrInsufficientEnergy) {
			zap.S().Fatalf("seed: can't add engagement: %v", err)
		}
	}
}

func genComments(users []*user.User, postId string) []*comment.Comment {
	n := rand.Intn(10)
	comments := []*comment.Comment{}
	for i := 0; i <= n; i++ {
		comments = append(comments, &comment.Comment{
			Id:        NewID(),
			PostId:    postId,
			Author:    randUser(users).AsAuthor(),
			CreatedAt: f.Time().Time(time.Now()),
			Content:   f.Lorem().Sentence(rand.Intn(12) + 3),
		})
	}
	return comments
}

func genMedia() []string {
	media := []string{}
	for i := rand.Intn(3); i > 0; i-- {
		media = append(media, f.Internet().URL())
	}
	return media
}

func genPost(users []*user.User) *post.Post {
	id := NewID()
	return &post.Post{
		Id:        id,
		Author:    randUser(users).AsAuthor(),
		Content:   f.Lorem().Paragraph(rand.Intn(3) + 2),
		Media:     genMedia(),
		Chakra:    post.Chakras[rand.Intn(len(post.Chakras))],
		CreatedAt: f.Time().Time(time.Now()),
		Comments:  genComments(users, id),
	}
}

func randUser(users []*user.User) *user.User {
	return users[rand.Intn(len(users))]
}
