package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UsersAPI_Go/internal/mapping"
	"github.com/osse101/UsersAPI_Go/internal/user"
	"github.com/osse101/UsersAPI_Go/internal/validation"
)

// newLiveRouter wires the handler to the real reconciler over a cached
// in-memory store.
func newLiveRouter() http.Handler {
	repo := user.NewCachedRepository(user.NewInMemoryRepository(), user.DefaultCacheConfig())
	svc := user.NewService(repo, mapping.NewRules(), validation.New())
	return newUserRouter(svc)
}

func createUser(t *testing.T, h http.Handler, login, first, last string) uuid.UUID {
	t.Helper()
	w := doRequest(h, http.MethodPost, usersPath,
		fmt.Sprintf(`{"login":%q,"firstName":%q,"lastName":%q}`, login, first, last))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var id uuid.UUID
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &id))
	return id
}

func paginationHeader(t *testing.T, w interface{ Header() http.Header }) PaginationMetadata {
	t.Helper()
	var meta PaginationMetadata
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get(HeaderPagination)), &meta))
	return meta
}

func TestUsersAPI_CreateThenGet(t *testing.T) {
	h := newLiveRouter()
	id := createUser(t, h, "johndoe375", "John", "Doe")

	w := doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"login":"johndoe375","fullName":"Doe John"}`, id), w.Body.String())
}

func TestUsersAPI_XMLRendering(t *testing.T) {
	h := newLiveRouter()
	id := createUser(t, h, "johndoe375", "John", "Doe")

	w := doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "", "Accept", "application/xml")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentTypeXML, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(),
		"<User><Id>"+id.String()+"</Id><Login>johndoe375</Login><FullName>Doe John</FullName></User>")

	w = doRequest(h, http.MethodGet, usersPath, "", "Accept", "text/xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Users><User>")
}

func TestUsersAPI_XMLValidationError(t *testing.T) {
	h := newLiveRouter()

	w := doRequest(h, http.MethodPost, usersPath, `{"login":"john doe","firstName":"","lastName":"Doe"}`,
		"Accept", "application/xml")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<ValidationError><Message>"+ErrMsgValidationFailed+"</Message>")
	firstName := strings.Index(body, `<Field name="FirstName">`)
	login := strings.Index(body, `<Field name="Login">`)
	assert.True(t, firstName >= 0 && login > firstName, "fields must be sorted: %s", body)
}

func TestUsersAPI_NotAcceptable(t *testing.T) {
	h := newLiveRouter()
	id := createUser(t, h, "johndoe375", "John", "Doe")

	w := doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "", "Accept", "text/csv")

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestUsersAPI_HeadReturnsHeadersOnly(t *testing.T) {
	h := newLiveRouter()
	id := createUser(t, h, "johndoe375", "John", "Doe")

	get := doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "")
	head := doRequest(h, http.MethodHead, usersPath+"/"+id.String(), "")

	require.Equal(t, http.StatusOK, head.Code)
	assert.Empty(t, head.Body.String())
	assert.Equal(t, get.Header().Get("Content-Length"), head.Header().Get("Content-Length"))
	assert.Equal(t, get.Header().Get("Content-Type"), head.Header().Get("Content-Type"))

	missing := doRequest(h, http.MethodHead, usersPath+"/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Empty(t, missing.Body.String())
}

func TestUsersAPI_Pagination(t *testing.T) {
	h := newLiveRouter()
	for i := 0; i < 5; i++ {
		createUser(t, h, fmt.Sprintf("user%d", i), "First", "Last")
	}

	t.Run("first page has no previous link", func(t *testing.T) {
		w := doRequest(h, http.MethodGet, usersPath+"?pageNumber=1&pageSize=2", "")
		require.Equal(t, http.StatusOK, w.Code)

		meta := paginationHeader(t, w)
		assert.Nil(t, meta.PreviousPageLink)
		require.NotNil(t, meta.NextPageLink)
		assert.Equal(t, "http://example.com/api/users?pageNumber=2&pageSize=2", *meta.NextPageLink)
		assert.Equal(t, 5, meta.TotalCount)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Equal(t, 2, meta.PageSize)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.NotContains(t, w.Header().Get(HeaderPagination), `\u0026`)

		var users []map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		require.Len(t, users, 2)
		assert.Equal(t, "user0", users[0]["login"])
		assert.Equal(t, "user1", users[1]["login"])
	})

	t.Run("last page has no next link", func(t *testing.T) {
		w := doRequest(h, http.MethodGet, usersPath+"?pageNumber=3&pageSize=2", "")
		require.Equal(t, http.StatusOK, w.Code)

		meta := paginationHeader(t, w)
		require.NotNil(t, meta.PreviousPageLink)
		assert.Equal(t, "http://example.com/api/users?pageNumber=2&pageSize=2", *meta.PreviousPageLink)
		assert.Nil(t, meta.NextPageLink)

		var users []map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		require.Len(t, users, 1)
		assert.Equal(t, "user4", users[0]["login"])
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		w := doRequest(h, http.MethodGet, usersPath+"?pageNumber=9&pageSize=2", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("oversized page is clamped", func(t *testing.T) {
		w := doRequest(h, http.MethodGet, usersPath+"?pageSize=500", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 20, paginationHeader(t, w).PageSize)
	})
}

func TestUsersAPI_ReplaceLifecycle(t *testing.T) {
	h := newLiveRouter()
	id := uuid.New()
	target := usersPath + "/" + id.String()

	w := doRequest(h, http.MethodPut, target, `{"login":"janedoe","firstName":"Jane","lastName":"Doe"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "http://example.com"+target, w.Header().Get(HeaderLocation))

	w = doRequest(h, http.MethodPut, target, `{"login":"janedoe2","firstName":"Janet","lastName":"Doe"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fullName":"Doe Janet"`)
	assert.Contains(t, w.Body.String(), `"login":"janedoe2"`)

	w = doRequest(h, http.MethodPut, target, `{"login":"","firstName":"Janet","lastName":"Doe"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"Login"`)
}

func TestUsersAPI_PatchDialectsAgree(t *testing.T) {
	h := newLiveRouter()
	viaJSONPatch := createUser(t, h, "johndoe375", "John", "Doe")
	viaMerge := createUser(t, h, "johndoe376", "John", "Doe")

	w := doRequest(h, http.MethodPatch, usersPath+"/"+viaJSONPatch.String(),
		`[{"op":"replace","path":"/lastName","value":"Smith"}]`)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(h, http.MethodPatch, usersPath+"/"+viaMerge.String(), `{"lastName":"Smith"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	for _, id := range []uuid.UUID{viaJSONPatch, viaMerge} {
		w = doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "")
		assert.Contains(t, w.Body.String(), `"fullName":"Smith John"`)
	}
}

func TestUsersAPI_PatchRevalidates(t *testing.T) {
	h := newLiveRouter()
	id := createUser(t, h, "johndoe375", "John", "Doe")

	w := doRequest(h, http.MethodPatch, usersPath+"/"+id.String(),
		`[{"op":"remove","path":"/firstName"},{"op":"replace","path":"/login","value":"bad login"}]`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "FirstName")
	assert.Contains(t, resp.Fields, "Login")

	w = doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "")
	assert.Contains(t, w.Body.String(), `"login":"johndoe375"`)
}

func TestUsersAPI_PatchMissingUserDoesNotCreate(t *testing.T) {
	h := newLiveRouter()
	id := uuid.New()

	w := doRequest(h, http.MethodPatch, usersPath+"/"+id.String(), `{"lastName":"Smith"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsersAPI_PatchMissingUserWinsOverBadDocument(t *testing.T) {
	h := newLiveRouter()
	id := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"json patch unknown path", `[{"op":"replace","path":"/nickname","value":"x"}]`},
		{"merge patch non-string value", `{"login":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(h, http.MethodPatch, usersPath+"/"+id.String(), tt.body)

			assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
		})
	}
}

func TestUsersAPI_PatchUnknownPathOnExistingUser(t *testing.T) {
	h := newLiveRouter()
	id := createUser(t, h, "johndoe375", "John", "Doe")

	w := doRequest(h, http.MethodPatch, usersPath+"/"+id.String(),
		`[{"op":"replace","path":"/nickname","value":"x"}]`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"/nickname"`)
}

func TestUsersAPI_DeleteThenGet(t *testing.T) {
	h := newLiveRouter()
	id := createUser(t, h, "johndoe375", "John", "Doe")

	w := doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(h, http.MethodDelete, usersPath+"/"+id.String(), "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(h, http.MethodGet, usersPath+"/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(h, http.MethodDelete, usersPath+"/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
