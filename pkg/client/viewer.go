package client

import (
	"context"
	"net/http"

	"ascended/pkg/client/querycache"
	"ascended/pkg/user"
)

// Viewer exposes the signed in user, cached under CurrentUserKey.
type Viewer struct {
	c     *Client
	cache *querycache.Cache
}

func NewViewer(c *Client, cache *querycache.Cache) *Viewer {
	return &Viewer{c: c, cache: cache}
}

func (v *Viewer) CurrentUser(ctx context.Context) (*user.User, error) {
	if !v.c.Authenticated() {
		return nil, ErrAuthRequired
	}
	return querycache.Fetch(ctx, v.cache, CurrentUserKey, func(ctx context.Context) (*user.User, error) {
		u := new(user.User)
		if err := v.c.Request(ctx, http.MethodGet, "/api/auth/user", nil, u); err != nil {
			return nil, err
		}
		return u, nil
	})
}

func (v *Viewer) EnergyBalance(ctx context.Context) (int, error) {
	u, err := v.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Energy, nil
}
