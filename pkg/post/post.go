package post

import (
	"errors"
	"fmt"
	"time"

	"ascended/pkg/comment"
	"ascended/pkg/engagement"
	"ascended/pkg/user"
)

type Chakra string

const (
	Root        Chakra = "root"
	Sacral      Chakra = "sacral"
	SolarPlexus Chakra = "solar_plexus"
	Heart       Chakra = "heart"
	Throat      Chakra = "throat"
	ThirdEye    Chakra = "third_eye"
	Crown       Chakra = "crown"
)

var Chakras = []Chakra{Root, Sacral, SolarPlexus, Heart, Throat, ThirdEye, Crown}

var (
	ErrNotFound      = errors.New("post not found")
	ErrUnknownChakra = errors.New("unknown chakra")
)

func ParseChakra(s string) (Chakra, error) {
	for _, c := range Chakras {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChakra, s)
}

type Post struct {
	Id        string       `json:"id" bson:"id"`
	Author    *user.Author `json:"author" bson:"author"`
	Content   string       `json:"content" bson:"content"`
	Media     []string     `json:"media" bson:"media"`
	Chakra    Chakra       `json:"chakra" bson:"chakra"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`

	Comments []*comment.Comment `json:"-" bson:"comments"`

	// Filled from the engagement store on every read, never persisted here.
	Engagements  engagement.Counters `json:"engagements" bson:"-"`
	Frequency    int                 `json:"frequency" bson:"-"`
	CommentCount int                 `json:"commentCount" bson:"-"`
}

// WithCounters sets the engagement snapshot and the derived frequency.
func (p *Post) WithCounters(c engagement.Counters) *Post {
	p.Engagements = c
	p.Frequency = c.Frequency()
	p.CommentCount = len(p.Comments)
	return p
}
