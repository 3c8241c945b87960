package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	Type   string
	Status string
	Action string
)

const (
	Spam                 Type = "spam"
	Harassment           Type = "harassment"
	InappropriateContent Type = "inappropriate_content"
	HateSpeech           Type = "hate_speech"
	Violence             Type = "violence"
	Misinformation       Type = "misinformation"
	CopyrightViolation   Type = "copyright_violation"
	FakeProfile          Type = "fake_profile"
	Other                Type = "other"
)

const (
	Pending   Status = "pending"
	Reviewed  Status = "reviewed"
	Resolved  Status = "resolved"
	Dismissed Status = "dismissed"
)

const (
	Approve Action = "approve"
	Dismiss Action = "dismiss"
	Remove  Action = "remove"
)

// MaxReasonLength bounds the free text a reporter can attach.
const MaxReasonLength = 1000

var (
	Types    = []Type{Spam, Harassment, InappropriateContent, HateSpeech, Violence, Misinformation, CopyrightViolation, FakeProfile, Other}
	Statuses = []Status{Pending, Reviewed, Resolved, Dismissed}
	Actions  = []Action{Approve, Dismiss, Remove}
)

var (
	ErrNotFound          = errors.New("report not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownType       = errors.New("unknown report type")
	ErrUnknownStatus     = errors.New("unknown report status")
	ErrUnknownAction     = errors.New("unknown bulk action")
	ErrInvalid           = errors.New("invalid report")
)

// Forward only: nothing leaves resolved or dismissed.
var transitions = map[Status][]Status{
	Pending:  {Reviewed, Resolved, Dismissed},
	Reviewed: {Resolved, Dismissed},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// TargetStatus is the status a bulk action moves every report to.
func (a Action) TargetStatus() Status {
	switch a {
	case Dismiss:
		return Dismissed
	default:
		return Resolved
	}
}

type Report struct {
	Id             string    `json:"id"`
	Type           Type      `json:"type"`
	Reason         string    `json:"reason"`
	Status         Status    `json:"status"`
	PostId         string    `json:"postId,omitempty"`
	ReportedUserId string    `json:"reportedUserId,omitempty"`
	ReporterId     string    `json:"reporterId"`
	ModeratorNotes string    `json:"moderatorNotes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks a freshly submitted report and trims its reason.
func (r *Report) Validate() error {
	if _, err := ParseType(string(r.Type)); err != nil {
		return err
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalid)
	}
	if len([]rune(r.Reason)) > MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalid)
	}
	if (r.PostId == "") == (r.ReportedUserId == "") {
		return fmt.Errorf("%w: exactly one of postId and reportedUserId is required", ErrInvalid)
	}
	if r.ReportedUserId != "" && r.ReportedUserId == r.ReporterId {
		return fmt.Errorf("%w: can't report yourself", ErrInvalid)
	}
	return nil
}
