package handler

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/logger"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	XMLName xml.Name `json:"-" xml:"Error"`
	Error   string   `json:"error" xml:"Message"`
}

// ValidationErrorResponse carries every field violation of a request.
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

type xmlFieldError struct {
	Name    string `xml:"name,attr"`
	Message string `xml:",chardata"`
}

// MarshalXML renders Fields as repeated <Field name="..."> elements in
// field-name order, since encoding/xml cannot encode maps.
func (v ValidationErrorResponse) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	doc := struct {
		Error  string          `xml:"Message"`
		Fields []xmlFieldError `xml:"Field"`
	}{Error: v.Error}
	for _, name := range sortedFieldNames(v.Fields) {
		for _, msg := range v.Fields[name] {
			doc.Fields = append(doc.Fields, xmlFieldError{Name: name, Message: msg})
		}
	}
	return e.EncodeElement(doc, xml.StartElement{Name: xml.Name{Local: "ValidationError"}})
}

// respondJSON sends a JSON response regardless of the negotiated format.
// Operational endpoints use it.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respond writes payload in the negotiated format.
func respond(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	respondNegotiated(w, r, status, payload, payload)
}

// respondNegotiated writes jsonPayload or xmlPayload depending on the
// negotiated format. HEAD requests get headers only.
func respondNegotiated(w http.ResponseWriter, r *http.Request, status int, jsonPayload, xmlPayload interface{}) {
	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	var err error
	contentType := ContentTypeJSON
	if FormatFromContext(r.Context()) == FormatXML {
		contentType = ContentTypeXML
		err = encodeXML(buf, xmlPayload)
	} else {
		err = json.NewEncoder(buf).Encode(jsonPayload)
	}
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func encodeXML(buf *bytes.Buffer, payload interface{}) error {
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(buf)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	return enc.Close()
}

// respondError sends an error response in the negotiated format
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, ErrorResponse{Error: message})
}

// respondServiceError maps domain errors to HTTP statuses and logs them.
// Internal error text is never sent to the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Info(LogMsgValidationError, "operation", opName, "fields", verr.Fields)
		respond(w, r, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  ErrMsgValidationFailed,
			Fields: verr.Fields,
		})
	case errors.Is(err, domain.ErrMalformedRequest):
		log.Warn(LogMsgDecodeFailed, "operation", opName, "error", err)
		respondError(w, r, http.StatusBadRequest, ErrMsgInvalidRequest)
	case errors.Is(err, domain.ErrUserNotFound):
		log.Info(LogMsgUserNotFound, "operation", opName)
		respondError(w, r, http.StatusNotFound, ErrMsgUserNotFound)
	default:
		log.Error(LogMsgServiceError, "operation", opName, "error", err)
		respondError(w, r, http.StatusInternalServerError, ErrMsgGenericServerError)
	}
}

// sortedFieldNames orders a field map for deterministic output.
func sortedFieldNames(fields map[string][]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
