package places

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"foodcart/foodcart-svc/internal/domain"
)

type Store interface {
	GetPlaces(ctx context.Context, addresses []string) (map[string]domain.Place, error)
	SavePlace(ctx context.Context, place *domain.Place) error
}

type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, bool)
}

type MissCache interface {
	MissMarkerKey(address string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

// Cache is a read-through address to coordinates cache. Successful lookups are
// persisted in Store; failed ones are only remembered in MissCache for a short
// while and retried afterwards.
type Cache struct {
	store       Store
	geocoder    Geocoder
	misses      MissCache
	concurrency int
	group       singleflight.Group
	now         func() time.Time
}

type Option func(*Cache)

func WithMissCache(misses MissCache) Option {
	return func(c *Cache) { c.misses = misses }
}

func WithConcurrency(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func NewCache(store Store, geocoder Geocoder, opts ...Option) *Cache {
	c := &Cache{
		store:       store,
		geocoder:    geocoder,
		concurrency: 4,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the coordinates of a single address.
func (c *Cache) Resolve(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	resolved, err := c.ResolveMany(ctx, []string{address})
	if err != nil {
		return domain.Coordinates{}, false, err
	}
	coords, ok := resolved[address]
	return coords, ok, nil
}

// ResolveMany resolves every address with one store lookup; misses go to the
// geocoder. Unresolved addresses are absent from the result.
func (c *Cache) ResolveMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	wanted := distinct(addresses)
	resolved := make(map[string]domain.Coordinates, len(wanted))
	if len(wanted) == 0 {
		return resolved, nil
	}

	cached, err := c.store.GetPlaces(ctx, wanted)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, address := range wanted {
		if coords, ok := cached[address].Coordinates(); ok {
			resolved[address] = coords
			continue
		}
		missing = append(missing, address)
	}
	if len(missing) == 0 {
		return resolved, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, address := range missing {
		g.Go(func() error {
			coords, ok := c.fetch(gctx, address)
			if ok {
				mu.Lock()
				resolved[address] = coords
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	return resolved, nil
}

// fetch geocodes one address, collapsing concurrent requests for it. The shared
// lookup ignores the caller's cancellation; each caller stops waiting on its own ctx.
func (c *Cache) fetch(ctx context.Context, address string) (domain.Coordinates, bool) {
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(address, func() (interface{}, error) {
		return c.geocode(shared, address), nil
	})

	select {
	case res := <-ch:
		result := res.Val.(lookup)
		return result.coords, result.ok
	case <-ctx.Done():
		return domain.Coordinates{}, false
	}
}

type lookup struct {
	coords domain.Coordinates
	ok     bool
}

func (c *Cache) geocode(ctx context.Context, address string) lookup {
	logger := log.WithField("address", address)

	var missKey string
	if c.misses != nil {
		missKey = c.misses.MissMarkerKey(address)
		if recent, err := c.misses.Exists(ctx, missKey); err == nil && recent {
			logger.Debug("places: skipping recently failed address")
			return lookup{}
		}
	}

	coords, ok := c.geocoder.Resolve(ctx, address)
	if !ok {
		if c.misses != nil {
			if err := c.misses.SetMarker(ctx, missKey); err != nil {
				logger.WithError(err).Warn("places: failed to store miss marker")
			}
		}
		return lookup{}
	}

	place := &domain.Place{Address: address, Lat: &coords.Lat, Lon: &coords.Lon, ResolvedAt: c.now()}
	if err := c.store.SavePlace(ctx, place); err != nil {
		logger.WithError(err).Warn("places: failed to cache coordinates")
	}
	return lookup{coords: coords, ok: true}
}

func distinct(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if strings.TrimSpace(address) == "" {
			continue
		}
		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		out = append(out, address)
	}
	return out
}
