package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/listora/listings-api/internal/application"
	"github.com/listora/listings-api/internal/domain/entity"
	"github.com/listora/listings-api/internal/domain/repository"
	handlers "github.com/listora/listings-api/internal/interface/http"
	"github.com/listora/listings-api/internal/interface/middleware"
	"github.com/listora/listings-api/internal/router/modules"
	"github.com/listora/listings-api/pkg/helpers"
	"github.com/listora/listings-api/pkg/validation"
)

// In-memory repositories so handler tests run the real service and
// validation stack end to end.

type memUserRepo struct {
	mu      sync.Mutex
	seq     int64
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	r.seq++
	u.ID = r.seq
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memListingRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]*entity.Listing
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{items: map[int64]*entity.Listing{}}
}

func (r *memListingRepo) Create(_ context.Context, l *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	l.ID = r.seq
	l.CreatedAt = time.Now().UTC()
	cp := *l
	r.items[l.ID] = &cp
	return nil
}

func (r *memListingRepo) GetByID(_ context.Context, id int64) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memListingRepo) List(_ context.Context, limit, offset int) ([]entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.Listing, 0, len(r.items))
	for _, l := range r.items {
		all = append(all, *l)
	}
	// newest first, matching the SQL ordering
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return []entity.Listing{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memListingRepo) OwnerOf(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return l.OwnerID, nil
}

func (r *memListingRepo) UpdateFields(_ context.Context, id int64, fields map[string]string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := fields["title"]; ok {
		l.Title = v
	}
	if v, ok := fields["description"]; ok {
		l.Description = v
	}
	cp := *l
	return &cp, nil
}

func (r *memListingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.ListingRepository = (*memListingRepo)(nil)
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	authSvc := application.NewAuthService(newMemUserRepo(), jwtm, logger, nil)
	listingSvc := application.NewListingService(newMemListingRepo(), nil, 0, logger, nil)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Identity(jwtm, logger))
	modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)).Register(api)
	modules.NewListingModule(handlers.NewListingHandler(listingSvc, logger)).Register(api)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates a user through the API and returns its id and a
// valid bearer token.
func registerAndLogin(t *testing.T, r *gin.Engine, email, password string) (int64, string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/register", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int64(decode(t, w)["id"].(float64))

	w = doJSON(r, http.MethodPost, "/api/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)
	return id, token
}
