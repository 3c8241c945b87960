package engagement

import (
	"errors"
	"fmt"
	"time"
)

type Type string

const (
	Upvote   Type = "upvote"
	Downvote Type = "downvote"
	Like     Type = "like"
	Energy   Type = "energy"
)

// Bounds of a single energy transfer.
const (
	MinEnergyAmount = 1
	MaxEnergyAmount = 50
)

var Types = []Type{Upvote, Downvote, Like, Energy}

var (
	ErrUnknownType        = errors.New("unknown engagement type")
	ErrBadAmount          = errors.New("energy amount must be between 1 and 50")
	ErrAlreadyEngaged     = errors.New("already engaged")
	ErrNotEngaged         = errors.New("engagement not found")
	ErrInsufficientEnergy = errors.New("insufficient energy")
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Upvote, Downvote, Like, Energy:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Opposite returns the vote that can't be active together with t.
func (t Type) Opposite() (Type, bool) {
	switch t {
	case Upvote:
		return Downvote, true
	case Downvote:
		return Upvote, true
	}
	return "", false
}

type Engagement struct {
	UserId    string    `json:"userId"`
	PostId    string    `json:"postId"`
	Type      Type      `json:"type"`
	Amount    int       `json:"amount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the amount against the type: energy carries one, others don't.
func (e *Engagement) Validate() error {
	if _, err := ParseType(string(e.Type)); err != nil {
		return err
	}
	if e.Type != Energy {
		e.Amount = 0
		return nil
	}
	if e.Amount < MinEnergyAmount || e.Amount > MaxEnergyAmount {
		return ErrBadAmount
	}
	return nil
}

// Counters is the per post snapshot. Energy is the sum of active transfers.
type Counters struct {
	Upvote   int `json:"upvote"`
	Downvote int `json:"downvote"`
	Like     int `json:"like"`
	Energy   int `json:"energy"`
}

// Frequency is the net vote score.
func (c Counters) Frequency() int {
	return c.Upvote - c.Downvote
}
