// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openplates/platewatch/internal/history"
)

// Resolver fronts the geoclient with the history store's geocode cache.
// The same intersections recur across a plate's records, and across
// plates, so most lookups never leave the database.
type Resolver struct {
	client *Client
	store  *history.Store
	log    zerolog.Logger
}

// NewResolver wires the client to the cache. store may be nil, which
// disables caching.
func NewResolver(client *Client, store *history.Store, log zerolog.Logger) *Resolver {
	return &Resolver{client: client, store: store, log: log}
}

// lookupString normalizes a street pair into the cache key.
func lookupString(street, crossStreet string) string {
	key := strings.ToLower(strings.Join(strings.Fields(street), " "))
	cross := strings.ToLower(strings.Join(strings.Fields(crossStreet), " "))
	if cross != "" {
		key += " & " + cross
	}
	return key
}

// Resolve consults the cache first and records fresh answers back to it.
// Cache write failures are logged and ignored; a stale cache costs one
// extra API call, never a wrong answer.
func (r *Resolver) Resolve(ctx context.Context, street, crossStreet string) (string, error) {
	key := lookupString(street, crossStreet)

	if r.store != nil {
		borough, ok, err := r.store.CachedBorough(ctx, key)
		if err != nil {
			r.log.Warn().Err(err).Str("lookup", key).Msg("geocode cache read failed")
		} else if ok {
			return borough, nil
		}
	}

	borough, err := r.client.Resolve(ctx, street, crossStreet)
	if err != nil {
		return "", err
	}

	if borough != "" && r.store != nil {
		if err := r.store.SaveGeocode(ctx, key, borough); err != nil {
			r.log.Warn().Err(err).Str("lookup", key).Msg("geocode cache write failed")
		}
	}
	return borough, nil
}
