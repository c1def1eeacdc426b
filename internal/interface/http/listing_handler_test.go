package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createListing(t *testing.T, r *gin.Engine, token, title, description string) int64 {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/listings", token, gin.H{"title": title, "description": description})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decode(t, w)["id"].(float64))
}

func TestListings_CreateRequiresAuth(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	w := doJSON(r, http.MethodPost, "/api/listings", "", gin.H{"title": "T", "description": "D"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListings_CreateSetsOwnerFromToken(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	uid, token := registerAndLogin(t, r, "a@b.com", "secret1")

	// Client-supplied owner fields are ignored; the token decides.
	w := doJSON(r, http.MethodPost, "/api/listings", token,
		gin.H{"title": "T", "description": "D", "owner_id": 999})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, float64(uid), body["owner_id"])
	assert.Equal(t, "T", body["title"])
}

func TestListings_CreateValidation(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "a@b.com", "secret1")

	// missing fields are caught at binding time
	w := doJSON(r, http.MethodPost, "/api/listings", token, gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "description")

	// whitespace-only fields pass binding and fail the trim-aware pass
	w = doJSON(r, http.MethodPost, "/api/listings", token, gin.H{"title": "  ", "description": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs = decode(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "description")
}

func TestListings_GetAndList(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "a@b.com", "secret1")
	id := createListing(t, r, token, "Bike", "City bike")

	// anonymous read
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/listings/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bike", decode(t, w)["title"])

	w = doJSON(r, http.MethodGet, "/api/listings/9999", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/listings/abc", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListings_ListPagination(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "a@b.com", "secret1")
	for i := 0; i < 3; i++ {
		createListing(t, r, token, fmt.Sprintf("Item %d", i), "D")
	}

	w := doJSON(r, http.MethodGet, "/api/listings?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(2), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
	assert.Len(t, body["items"], 2)

	// out-of-range values are clamped, not errors
	w = doJSON(r, http.MethodGet, "/api/listings?limit=junk&offset=-4", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, float64(50), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
}

func TestListings_UpdateOwnership(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	_, tokenA := registerAndLogin(t, r, "a@b.com", "secret1")
	_, tokenB := registerAndLogin(t, r, "b@b.com", "secret2")
	id := createListing(t, r, tokenA, "Bike", "City bike")

	path := fmt.Sprintf("/api/listings/%d", id)

	// non-owner: forbidden
	w := doJSON(r, http.MethodPut, path, tokenB, gin.H{"title": "Stolen"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// missing id: not found for everyone, owner or not
	w = doJSON(r, http.MethodPut, "/api/listings/9999", tokenB, gin.H{"title": "X"})
	require.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(r, http.MethodPut, "/api/listings/9999", tokenA, gin.H{"title": "X"})
	require.Equal(t, http.StatusNotFound, w.Code)

	// unauthenticated: 401 before any ownership logic
	w = doJSON(r, http.MethodPut, path, "", gin.H{"title": "X"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// owner: partial update touches only the supplied field
	w = doJSON(r, http.MethodPatch, path, tokenA, gin.H{"title": "Better bike"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Better bike", body["title"])
	assert.Equal(t, "City bike", body["description"])
}

func TestListings_UpdateFieldRules(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "a@b.com", "secret1")
	id := createListing(t, r, token, "Bike", "City bike")
	path := fmt.Sprintf("/api/listings/%d", id)

	// only disallowed keys
	w := doJSON(r, http.MethodPatch, path, token, gin.H{"owner_id": 9, "color": "red"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No fields to update")

	// explicit blank is an error, not a silent skip
	w = doJSON(r, http.MethodPatch, path, token, gin.H{"title": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"].(map[string]any), "title")

	// explicit null is a no-op; all-null leaves nothing to do
	w = doJSON(r, http.MethodPatch, path, token, gin.H{"title": nil})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No valid fields to update")
}

func TestListings_Delete(t *testing.T) {
	t.Parallel()

	r := newTestServer(t)
	_, tokenA := registerAndLogin(t, r, "a@b.com", "secret1")
	_, tokenB := registerAndLogin(t, r, "b@b.com", "secret2")
	id := createListing(t, r, tokenA, "Bike", "City bike")
	path := fmt.Sprintf("/api/listings/%d", id)

	w := doJSON(r, http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodDelete, path, tokenB, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodDelete, path, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(id), decode(t, w)["id"])

	// second delete: gone
	w = doJSON(r, http.MethodDelete, path, tokenA, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
