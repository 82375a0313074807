package handler

import (
	"context"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/osse101/UsersAPI_Go/internal/logger"
)

// Format is a response serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// Content types written for each format
const (
	ContentTypeJSON     = "application/json; charset=utf-8"
	ContentTypeXML      = "application/xml; charset=utf-8"
	MediaTypeJSONPatch  = "application/json-patch+json"
	MediaTypeMergePatch = "application/merge-patch+json"
)

type formatKey struct{}

// mediaFormats maps accepted media ranges to a format. Order matters for
// wildcards: JSON is preferred.
var mediaFormats = map[string]Format{
	"*/*":              FormatJSON,
	"application/*":    FormatJSON,
	"application/json": FormatJSON,
	"text/json":        FormatJSON,
	"application/xml":  FormatXML,
	"text/xml":         FormatXML,
	"text/*":           FormatXML,
}

type mediaRange struct {
	mediaType string
	q         float64
	index     int
}

// NegotiateFormat picks a response format from the Accept header. An absent
// header means JSON. ok is false when nothing offered is acceptable.
func NegotiateFormat(accept string) (Format, bool) {
	if strings.TrimSpace(accept) == "" {
		return FormatJSON, true
	}

	var ranges []mediaRange
	for i, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				q = parsed
			}
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, mediaRange{mediaType: mediaType, q: q, index: i})
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].q > ranges[j].q
	})

	for _, mr := range ranges {
		if f, ok := mediaFormats[mr.mediaType]; ok {
			return f, true
		}
	}
	return "", false
}

// Negotiate resolves the response format once per request and answers 406
// when the client accepts none of the supported formats.
func Negotiate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format, ok := NegotiateFormat(r.Header.Get("Accept"))
		if !ok {
			logger.FromContext(r.Context()).Warn(LogMsgNotAcceptable, "accept", r.Header.Get("Accept"))
			http.Error(w, ErrMsgNotAcceptable, http.StatusNotAcceptable)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), formatKey{}, format)))
	})
}

// FormatFromContext returns the negotiated format, defaulting to JSON.
func FormatFromContext(ctx context.Context) Format {
	if f, ok := ctx.Value(formatKey{}).(Format); ok {
		return f
	}
	return FormatJSON
}
