package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/logger"
	"github.com/osse101/UsersAPI_Go/internal/pagination"
)

// Route and query parameter names
const (
	ParamUserID     = "userId"
	QueryPageNumber = "pageNumber"
	QueryPageSize   = "pageSize"

	HeaderLocation   = "Location"
	HeaderPagination = "X-Pagination"
	HeaderAllow      = "Allow"
)

var (
	errMissingBody  = errors.New(ErrMsgMissingBody)
	errBodyTooLarge = errors.New(ErrMsgBodyTooLarge)
)

// readBody returns the raw request body. An empty body or a JSON null is a
// malformed request.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, errMissingBody)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: %w: limit %d bytes", domain.ErrMalformedRequest, errBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: failed to read body: %v", domain.ErrMalformedRequest, err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, errMissingBody)
	}
	return trimmed, nil
}

// decodeBody reads the body and unmarshals it into v. Every failure wraps
// domain.ErrMalformedRequest.
func decodeBody(r *http.Request, v interface{}) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	return nil
}

// parseUserID reads the {userId} route parameter. ok is false when it is not
// a UUID.
func parseUserID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, ParamUserID))
	if err != nil {
		logger.FromContext(r.Context()).Debug(ErrMsgInvalidUserID, "raw", chi.URLParam(r, ParamUserID))
		return uuid.Nil, false
	}
	return id, true
}

// queryInt returns the integer query parameter, or def when it is absent or
// unparseable. Range clamping is left to the pagination helper.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// absoluteURL resolves path against the scheme and host the request came in on.
func absoluteURL(r *http.Request, path string, query url.Values) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: path}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// userLocation is the absolute URI of a single user resource.
func userLocation(r *http.Request, id uuid.UUID) string {
	base := strings.TrimSuffix(r.URL.Path, "/")
	if chi.URLParam(r, ParamUserID) != "" {
		base = base[:strings.LastIndex(base, "/")]
	}
	return absoluteURL(r, base+"/"+id.String(), nil)
}

// PaginationMetadata is the JSON carried in the X-Pagination header.
type PaginationMetadata struct {
	PreviousPageLink *string `json:"previousPageLink"`
	NextPageLink     *string `json:"nextPageLink"`
	TotalCount       int     `json:"totalCount"`
	PageSize         int     `json:"pageSize"`
	CurrentPage      int     `json:"currentPage"`
	TotalPages       int     `json:"totalPages"`
}

// buildPaginationMetadata turns page links into absolute URIs of the list
// endpoint the request hit.
func buildPaginationMetadata(r *http.Request, page pagination.Page) PaginationMetadata {
	link := func(l *pagination.Link) *string {
		if l == nil {
			return nil
		}
		q := url.Values{}
		q.Set(QueryPageNumber, strconv.Itoa(l.PageNumber))
		q.Set(QueryPageSize, strconv.Itoa(l.PageSize))
		s := absoluteURL(r, r.URL.Path, q)
		return &s
	}

	return PaginationMetadata{
		PreviousPageLink: link(page.PreviousLink()),
		NextPageLink:     link(page.NextLink()),
		TotalCount:       page.TotalCount,
		PageSize:         page.PageSize,
		CurrentPage:      page.CurrentPage,
		TotalPages:       page.TotalPages,
	}
}

// encodePaginationHeader renders meta as single-line JSON without HTML
// escaping, so link query strings keep their literal '&'.
func encodePaginationHeader(meta PaginationMetadata) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
