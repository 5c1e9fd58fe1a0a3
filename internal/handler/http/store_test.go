package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/internal/service"
	apperrors "github.com/utafrali/wishlist/pkg/errors"
	"github.com/utafrali/wishlist/pkg/health"
	"github.com/utafrali/wishlist/pkg/httputil"
	"github.com/utafrali/wishlist/pkg/middleware"
)

// ============================================================================
// In-memory store
// ============================================================================

// memStore implements the product and wishlist repositories in memory. A
// logical clock orders rows so newest-first is deterministic.
type memStore struct {
	mu       sync.Mutex
	clock    int64
	products []domain.Product
	entries  []domain.WishlistEntry
	calls    int
	failWith error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) tick() time.Time {
	s.clock++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.clock) * time.Second)
}

func (s *memStore) enter() error {
	s.calls++
	return s.failWith
}

func (s *memStore) createProduct(name, price string) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	p := domain.Product{
		ID:          int64(len(s.products) + 1),
		Name:        name,
		Price:       domain.MustPrice(price),
		Description: name + " description",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products = append(s.products, p)
	return p
}

func (s *memStore) entryCount(userID, productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.UserID == userID && e.ProductID == productID {
			n++
		}
	}
	return n
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *memStore) List(_ context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

func (s *memStore) Create(_ context.Context, _ *domain.Product) error {
	return errors.New("not supported")
}

func (s *memStore) Add(_ context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return err
	}
	for _, e := range s.entries {
		if e.UserID == userID && e.ProductID == productID {
			return apperrors.Conflict(domain.MsgWishlistExists)
		}
	}
	now := s.tick()
	s.entries = append(s.entries, domain.WishlistEntry{
		ID:        s.clock,
		UserID:    userID,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

func (s *memStore) ListProducts(_ context.Context, userID int64) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}
	var mine []domain.WishlistEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })

	out := make([]domain.Product, 0, len(mine))
	for _, e := range mine {
		for _, p := range s.products {
			if p.ID == e.ProductID {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *memStore) Remove(_ context.Context, userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return false, err
	}
	for i, e := range s.entries {
		if e.UserID == userID && e.ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Exists(_ context.Context, userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return false, err
	}
	for _, e := range s.entries {
		if e.UserID == userID && e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// ============================================================================
// Router helpers
// ============================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tokenValidator accepts tokens of the form "user-<id>" and uses <id> as the
// subject verbatim.
func tokenValidator(token string) (*middleware.Claims, error) {
	subject, ok := strings.CutPrefix(token, "user-")
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &middleware.Claims{Subject: subject}, nil
}

func newTestRouter(t *testing.T, store *memStore) http.Handler {
	t.Helper()
	logger := discardLogger()
	catalog := service.NewCatalogService(store, logger)
	return NewRouter(RouterConfig{
		ServiceName:    "wishlist-test",
		Catalog:        catalog,
		Wishlist:       service.NewWishlistService(catalog, store, logger),
		TokenValidator: tokenValidator,
		Health:         health.NewHandler(),
		Logger:         logger,
		CORS:           middleware.DefaultCORSConfig(),
	})
}

func do(t *testing.T, h http.Handler, method, path string, userID int64) (*httptest.ResponseRecorder, httputil.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer user-"+strconv.FormatInt(userID, 10))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, decode(t, rec)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) httputil.Envelope {
	t.Helper()
	var env httputil.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

func productNames(t *testing.T, env httputil.Envelope) []string {
	t.Helper()
	var products []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &products))
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}
