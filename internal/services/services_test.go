package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/franciscosanchezn/gin-shop-api/internal/database"
	"github.com/franciscosanchezn/gin-shop-api/internal/events"
	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("connection refused")

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), database.GormConfig())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// failingUserRepo fails the configured operations with the configured errors
type failingUserRepo struct {
	findErr   error
	insertErr error
	inserted  int
}

func (r *failingUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, r.findErr
}

func (r *failingUserRepo) FindByID(context.Context, uint) (*models.User, error) {
	return nil, r.findErr
}

func (r *failingUserRepo) Insert(context.Context, *models.User) error {
	r.inserted++
	return r.insertErr
}

// failingProductRepo wraps a real repository and overrides selected operations with errors
type failingProductRepo struct {
	repository.ProductRepository
	listErr   error
	findErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func (r *failingProductRepo) ListAll(ctx context.Context) ([]models.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.ProductRepository.ListAll(ctx)
}

func (r *failingProductRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.ProductRepository.FindByID(ctx, id)
}

func (r *failingProductRepo) Insert(ctx context.Context, p *models.Product) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	return r.ProductRepository.Insert(ctx, p)
}

func (r *failingProductRepo) Update(ctx context.Context, p *models.Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.ProductRepository.Update(ctx, p)
}

func (r *failingProductRepo) Delete(ctx context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.ProductRepository.Delete(ctx, id)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ProductEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.ProductEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
