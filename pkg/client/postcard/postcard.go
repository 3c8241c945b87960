package postcard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"ascended/pkg/client"
	"ascended/pkg/client/notify"
	"ascended/pkg/client/querycache"
	"ascended/pkg/engagement"
	"ascended/pkg/logger"
)

// DefaultEnergyAmount is what the energy popover opens with.
const DefaultEnergyAmount = 10

type engageRequest struct {
	Type         engagement.Type `json:"type"`
	EnergyAmount int             `json:"energyAmount,omitempty"`
}

// Card keeps one post's engagement state for the signed in user and
// reconciles optimistic toggles with the server.
type Card struct {
	postId   string
	api      *client.Client
	viewer   *client.Viewer
	cache    *querycache.Cache
	notifier notify.Notifier

	mu       sync.Mutex
	engaged  map[engagement.Type]bool
	pending  map[engagement.Type]bool
	counters *engagement.Counters

	energyOpen   bool
	energyAmount int
	energyMax    int
}

func New(postId string, api *client.Client, viewer *client.Viewer, cache *querycache.Cache, n notify.Notifier) *Card {
	return &Card{
		postId:   postId,
		api:      api,
		viewer:   viewer,
		cache:    cache,
		notifier: n,
		engaged:  map[engagement.Type]bool{},
		pending:  map[engagement.Type]bool{},
	}
}

func (cd *Card) PostId() string {
	return cd.postId
}

// Load fetches the user's engagements on the post. Anonymous viewers get an
// empty set without a request.
func (cd *Card) Load(ctx context.Context) error {
	if !cd.api.Authenticated() {
		cd.mu.Lock()
		cd.engaged = map[engagement.Type]bool{}
		cd.mu.Unlock()
		return nil
	}

	types, err := querycache.Fetch(ctx, cd.cache, client.EngagementKey(cd.postId), func(ctx context.Context) ([]engagement.Type, error) {
		reply := struct {
			Engagements []engagement.Type `json:"engagements"`
		}{}
		if err := cd.api.Request(ctx, http.MethodGet, cd.path("/engage/user"), nil, &reply); err != nil {
			return nil, err
		}
		return reply.Engagements, nil
	})
	if err != nil {
		return fmt.Errorf("postcard: can't load engagements of post %s: %w", cd.postId, err)
	}

	cd.mu.Lock()
	cd.reconcile(types)
	cd.mu.Unlock()
	return nil
}

// reconcile replaces the set with the server one, leaving pending types alone.
func (cd *Card) reconcile(types []engagement.Type) {
	active := map[engagement.Type]bool{}
	for _, t := range types {
		active[t] = true
	}
	for _, t := range engagement.Types {
		if cd.pending[t] {
			continue
		}
		if active[t] {
			cd.engaged[t] = true
		} else {
			delete(cd.engaged, t)
		}
	}
}

func (cd *Card) Engaged(t engagement.Type) bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.engaged[t]
}

// Engagements lists the active types in engagement.Types order.
func (cd *Card) Engagements() []engagement.Type {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	res := []engagement.Type{}
	for _, t := range engagement.Types {
		if cd.engaged[t] {
			res = append(res, t)
		}
	}
	return res
}

func (cd *Card) Pending(t engagement.Type) bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.pending[t]
}

// Counters returns the post counters from the last successful toggle, or
// the feed ones given to SetCounters before any toggle.
func (cd *Card) Counters() (engagement.Counters, bool) {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if cd.counters == nil {
		return engagement.Counters{}, false
	}
	return *cd.counters, true
}

// SetCounters seeds the card with the counters the post list came with.
func (cd *Card) SetCounters(c engagement.Counters) {
	cd.mu.Lock()
	cd.counters = &c
	cd.mu.Unlock()
}

// Frequency is the card's vote score rendered from its current counters.
func (cd *Card) Frequency() (int, Tone) {
	c, _ := cd.Counters()
	return Frequency(c)
}

// Toggle adds the engagement when it's not active and removes it otherwise.
// The local set changes right away and is rolled back if the server refuses.
func (cd *Card) Toggle(ctx context.Context, t engagement.Type, amount int) error {
	if !cd.api.Authenticated() {
		cd.fail("Sign in required", "Log in to engage with posts.")
		return client.ErrAuthRequired
	}
	if _, err := engagement.ParseType(string(t)); err != nil {
		return fmt.Errorf("%w: %v", client.ErrValidation, err)
	}

	cd.mu.Lock()
	active := cd.engaged[t]
	cd.mu.Unlock()

	// Removals carry no amount, only transfers are checked against the balance.
	if t == engagement.Energy && !active {
		if amount < engagement.MinEnergyAmount || amount > engagement.MaxEnergyAmount {
			return fmt.Errorf("%w: %v", client.ErrValidation, engagement.ErrBadAmount)
		}
		balance, err := cd.viewer.EnergyBalance(ctx)
		if err != nil {
			return fmt.Errorf("postcard: can't read energy balance: %w", err)
		}
		if balance < amount {
			ierr := &client.InsufficientEnergyError{Needed: amount, Available: balance}
			cd.fail("Not enough energy", client.UserMessage(ierr))
			return ierr
		}
	}

	cd.mu.Lock()
	if cd.gated(t) || cd.engaged[t] != active {
		cd.mu.Unlock()
		return client.ErrInFlight
	}

	snapshot := map[engagement.Type]bool{t: active}
	if active {
		delete(cd.engaged, t)
	} else {
		cd.engaged[t] = true
		if opp, ok := t.Opposite(); ok {
			snapshot[opp] = cd.engaged[opp]
			delete(cd.engaged, opp)
		}
	}
	cd.pending[t] = true
	cd.mu.Unlock()

	state := new(engagement.State)
	var err error
	if active {
		err = cd.api.Request(ctx, http.MethodDelete, cd.path("/engage/"+url.PathEscape(string(t))), nil, state)
	} else {
		req := engageRequest{Type: t}
		if t == engagement.Energy {
			req.EnergyAmount = amount
		}
		err = cd.api.Request(ctx, http.MethodPost, cd.path("/engage"), req, state)
	}

	cd.mu.Lock()
	delete(cd.pending, t)
	if err != nil {
		for k, v := range snapshot {
			if k != t && cd.pending[k] {
				continue
			}
			if v {
				cd.engaged[k] = true
			} else {
				delete(cd.engaged, k)
			}
		}
		cd.mu.Unlock()

		logger.Log(ctx).Warnf("postcard: toggling %s on post %s failed: %v", t, cd.postId, err)
		cd.cache.Invalidate(client.PostsKey, client.CurrentUserKey, client.EngagementKey(cd.postId))
		if loadErr := cd.Load(ctx); loadErr != nil {
			logger.Log(ctx).Warnf("postcard: reload after failed toggle: %v", loadErr)
		}
		cd.fail("Engagement failed", client.UserMessage(err))
		return err
	}

	cd.reconcile(state.Engagements)
	counters := state.Counters
	cd.counters = &counters
	cd.mu.Unlock()

	cd.cache.Set(client.EngagementKey(cd.postId), state.Engagements)
	cd.cache.Invalidate(client.PostsKey, client.CurrentUserKey)
	return nil
}

// gated reports whether t or the vote it excludes is waiting for the server.
func (cd *Card) gated(t engagement.Type) bool {
	if cd.pending[t] {
		return true
	}
	opp, ok := t.Opposite()
	return ok && cd.pending[opp]
}

func (cd *Card) path(suffix string) string {
	return "/api/posts/" + url.PathEscape(cd.postId) + suffix
}

func (cd *Card) fail(title, description string) {
	cd.notifier.Notify(notify.Toast{Kind: notify.Failure, Title: title, Description: description})
}
