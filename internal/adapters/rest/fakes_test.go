package rest

import (
	"context"
	"net/http"

	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

type silentLogger struct{}

func (silentLogger) Info(string, port.Fields)                 {}
func (silentLogger) Warn(string, port.Fields)                 {}
func (silentLogger) Debug(string, port.Fields)                {}
func (silentLogger) Error(string, error, port.Fields)         {}
func (l silentLogger) WithFields(port.Fields) port.LoggerPort { return l }

type addPropertyFunc func(ctx context.Context, p domain.NewProperty) (*domain.Property, error)

func (f addPropertyFunc) Execute(ctx context.Context, p domain.NewProperty) (*domain.Property, error) {
	return f(ctx, p)
}

type getAllPropertiesFunc func(ctx context.Context) ([]domain.PropertyWithAddress, error)

func (f getAllPropertiesFunc) Execute(ctx context.Context) ([]domain.PropertyWithAddress, error) {
	return f(ctx)
}

type getPropertyByIDFunc func(ctx context.Context, id int) (*domain.Property, error)

func (f getPropertyByIDFunc) Execute(ctx context.Context, id int) (*domain.Property, error) {
	return f(ctx, id)
}

type getPropertiesByOwnerFunc func(ctx context.Context, owner string) ([]domain.Property, error)

func (f getPropertiesByOwnerFunc) Execute(ctx context.Context, owner string) ([]domain.Property, error) {
	return f(ctx, owner)
}

type getPropertiesByIDsFunc func(ctx context.Context, ids []int) ([]domain.Property, error)

func (f getPropertiesByIDsFunc) Execute(ctx context.Context, ids []int) ([]domain.Property, error) {
	return f(ctx, ids)
}

type updatePropertyFunc func(ctx context.Context, id int, u domain.PropertyUpdate) (*domain.Property, error)

func (f updatePropertyFunc) Execute(ctx context.Context, id int, u domain.PropertyUpdate) (*domain.Property, error) {
	return f(ctx, id, u)
}

type deletePropertyFunc func(ctx context.Context, id int) (*domain.Property, error)

func (f deletePropertyFunc) Execute(ctx context.Context, id int) (*domain.Property, error) {
	return f(ctx, id)
}

type getAnswerFunc func(ctx context.Context, query string, history []domain.ChatMessage) (string, error)

func (f getAnswerFunc) Execute(ctx context.Context, query string, history []domain.ChatMessage) (string, error) {
	return f(ctx, query, history)
}

type getDescriptionFunc func(ctx context.Context, p domain.PropertyDescriptor) (string, error)

func (f getDescriptionFunc) Execute(ctx context.Context, p domain.PropertyDescriptor) (string, error) {
	return f(ctx, p)
}

type getComparisonFunc func(ctx context.Context, ps []domain.PropertyDescriptor) (string, error)

func (f getComparisonFunc) Execute(ctx context.Context, ps []domain.PropertyDescriptor) (string, error) {
	return f(ctx, ps)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// testDeps - по умолчанию каждый use case падает, тест подменяет нужный
type testDeps struct {
	add        addPropertyFunc
	getAll     getAllPropertiesFunc
	getByID    getPropertyByIDFunc
	byOwner    getPropertiesByOwnerFunc
	byIDs      getPropertiesByIDsFunc
	update     updatePropertyFunc
	del        deletePropertyFunc
	answer     getAnswerFunc
	describe   getDescriptionFunc
	compare    getComparisonFunc
	ping       pingFunc
	frontend   http.Handler
	metricsOut http.Handler
}

func newTestRouter(d testDeps) http.Handler {
	unexpected := func() error { panic("unexpected use case call") }
	if d.add == nil {
		d.add = func(context.Context, domain.NewProperty) (*domain.Property, error) { return nil, unexpected() }
	}
	if d.getAll == nil {
		d.getAll = func(context.Context) ([]domain.PropertyWithAddress, error) { return nil, unexpected() }
	}
	if d.getByID == nil {
		d.getByID = func(context.Context, int) (*domain.Property, error) { return nil, unexpected() }
	}
	if d.byOwner == nil {
		d.byOwner = func(context.Context, string) ([]domain.Property, error) { return nil, unexpected() }
	}
	if d.byIDs == nil {
		d.byIDs = func(context.Context, []int) ([]domain.Property, error) { return nil, unexpected() }
	}
	if d.update == nil {
		d.update = func(context.Context, int, domain.PropertyUpdate) (*domain.Property, error) { return nil, unexpected() }
	}
	if d.del == nil {
		d.del = func(context.Context, int) (*domain.Property, error) { return nil, unexpected() }
	}
	if d.answer == nil {
		d.answer = func(context.Context, string, []domain.ChatMessage) (string, error) { return "", unexpected() }
	}
	if d.describe == nil {
		d.describe = func(context.Context, domain.PropertyDescriptor) (string, error) { return "", unexpected() }
	}
	if d.compare == nil {
		d.compare = func(context.Context, []domain.PropertyDescriptor) (string, error) { return "", unexpected() }
	}
	if d.ping == nil {
		d.ping = func(context.Context) error { return nil }
	}

	handlers := Handlers{
		Property:   NewPropertyHandler(d.add, d.getAll, d.getByID, d.byOwner, d.byIDs, d.update, d.del),
		Generation: NewGenerationHandler(d.answer, d.describe, d.compare),
		Health:     NewHealthHandler(d.ping),
	}
	return NewRouter(RouterConfig{Frontend: d.frontend, MetricsHandler: d.metricsOut}, handlers, silentLogger{})
}
