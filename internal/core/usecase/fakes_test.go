package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"property-service/internal/core/domain"
)

// memoryStorage - PropertyStoragePort в памяти с той же семантикой ID, что и postgres-адаптер
type memoryStorage struct {
	mu    sync.Mutex
	items map[int]domain.Property
	err   error
}

func newMemoryStorage(props ...domain.Property) *memoryStorage {
	s := &memoryStorage{items: make(map[int]domain.Property)}
	for _, p := range props {
		s.items[p.ID] = p
	}
	return s
}

func (s *memoryStorage) Create(_ context.Context, p domain.NewProperty) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	next := 1
	for id := range s.items {
		if id >= next {
			next = id + 1
		}
	}
	prop := domain.Property{
		ID: next, Owner: p.Owner, Name: p.Name, Location: p.Location, Price: p.Price,
		Bedrooms: p.Bedrooms, Sqft: p.Sqft, ImageURL: p.ImageURL, Amenities: p.Amenities,
	}
	s.items[next] = prop
	return &prop, nil
}

func (s *memoryStorage) sorted(filter func(domain.Property) bool) []domain.Property {
	out := []domain.Property{}
	for _, p := range s.items {
		if filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStorage) FindAll(_ context.Context) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(domain.Property) bool { return true }), nil
}

func (s *memoryStorage) FindByID(_ context.Context, id int) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return &p, nil
}

func (s *memoryStorage) FindByOwner(_ context.Context, owner string) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(p domain.Property) bool { return p.Owner == owner }), nil
}

func (s *memoryStorage) FindByIDs(_ context.Context, ids []int) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return s.sorted(func(p domain.Property) bool { return wanted[p.ID] }), nil
}

func (s *memoryStorage) Update(_ context.Context, id int, u domain.PropertyUpdate) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Bedrooms != nil {
		p.Bedrooms = *u.Bedrooms
	}
	if u.Sqft != nil {
		p.Sqft = *u.Sqft
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	s.items[id] = p
	return &p, nil
}

func (s *memoryStorage) Delete(_ context.Context, id int) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	delete(s.items, id)
	return &p, nil
}

// fakeGeocoder считает одновременные вызовы, чтобы проверить ограничение fan-out
type fakeGeocoder struct {
	delay    time.Duration
	failFor  map[string]bool
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (g *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (*domain.Address, error) {
	g.calls.Add(1)
	cur := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		peak := g.peak.Load()
		if cur <= peak || g.peak.CompareAndSwap(peak, cur) {
			break
		}
	}

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	loc := domain.FormatLocation(lat, lon)
	if g.failFor[loc] {
		return nil, errors.New("geocoder exploded")
	}
	return &domain.Address{DisplayName: "addr:" + loc}, nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.PropertyEvent
	err    error
}

func (r *recordingEvents) Publish(_ context.Context, e domain.PropertyEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

type fakeGenerator struct {
	answerFn      func(ctx context.Context, query string, history []domain.ChatMessage) (string, error)
	descriptionFn func(ctx context.Context, p domain.PropertyDescriptor) (string, error)
	comparisonFn  func(ctx context.Context, ps []domain.PropertyDescriptor) (string, error)
}

func (f *fakeGenerator) GenerateAnswer(ctx context.Context, query string, history []domain.ChatMessage) (string, error) {
	return f.answerFn(ctx, query, history)
}

func (f *fakeGenerator) GenerateDescription(ctx context.Context, p domain.PropertyDescriptor) (string, error) {
	return f.descriptionFn(ctx, p)
}

func (f *fakeGenerator) GenerateComparison(ctx context.Context, ps []domain.PropertyDescriptor) (string, error) {
	return f.comparisonFn(ctx, ps)
}
