package user

import (
	"encoding/json"
	"strings"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/dto"
)

// Field names a patchable user attribute.
type Field string

// Patch maps a field to its new value. A nil value clears the field.
type Patch map[Field]*string

// PatchOperation is one RFC 6902 operation.
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// PatchDocument is a decoded patch body. Its operations are checked by
// Resolve, which the service calls only after the target user is loaded.
type PatchDocument interface {
	Resolve() (Patch, error)
}

// JSONPatchDocument is an RFC 6902 operation list.
type JSONPatchDocument []PatchOperation

// Resolve implements PatchDocument.
func (d JSONPatchDocument) Resolve() (Patch, error) {
	return ParseJSONPatch(d)
}

// MergePatchDocument is an RFC 7396 merge object.
type MergePatchDocument map[string]json.RawMessage

// Resolve implements PatchDocument.
func (d MergePatchDocument) Resolve() (Patch, error) {
	return ParseMergePatch(d)
}

// Resolve returns p unchanged.
func (p Patch) Resolve() (Patch, error) {
	return p, nil
}

// Set records a new value for f.
func (p Patch) Set(f Field, value string) Patch {
	p[f] = &value
	return p
}

// Clear records that f should be emptied.
func (p Patch) Clear(f Field) Patch {
	p[f] = nil
	return p
}

// ApplyTo writes every entry onto view in a fixed field order.
func (p Patch) ApplyTo(view *dto.UserToUpdateDto) {
	for _, f := range patchableFields {
		value, ok := p[f]
		if !ok {
			continue
		}
		target := fieldTarget(view, f)
		if value == nil {
			*target = ""
		} else {
			*target = *value
		}
	}
}

var patchableFields = []Field{FieldLogin, FieldFirstName, FieldLastName}

func fieldTarget(view *dto.UserToUpdateDto, f Field) *string {
	switch f {
	case FieldLogin:
		return &view.Login
	case FieldFirstName:
		return &view.FirstName
	default:
		return &view.LastName
	}
}

// lookupField resolves a wire name case-insensitively.
func lookupField(name string) (Field, bool) {
	for _, f := range patchableFields {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

// ParseJSONPatch converts add, replace and remove operations on /login,
// /firstName and /lastName into a Patch. Later operations on the same field
// win. Every rejected operation is reported, keyed by its path.
func ParseJSONPatch(ops []PatchOperation) (Patch, error) {
	patch := make(Patch, len(ops))
	verr := domain.NewValidationError()

	for _, op := range ops {
		f, ok := lookupField(strings.TrimPrefix(op.Path, "/"))
		if !ok {
			verr.Add(op.Path, domain.ErrMsgUnknownPatchPath)
			continue
		}

		switch strings.ToLower(op.Op) {
		case PatchOpAdd, PatchOpReplace:
			value, ok := decodeText(op.Value)
			if !ok {
				verr.Add(op.Path, domain.ErrMsgPatchValueNotText)
				continue
			}
			if value == nil {
				patch.Clear(f)
			} else {
				patch.Set(f, *value)
			}
		case PatchOpRemove:
			patch.Clear(f)
		default:
			verr.Add(op.Path, domain.ErrMsgUnsupportedPatch+": "+op.Op)
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return patch, nil
}

// ParseMergePatch converts a merge-patch object into a Patch. A JSON null
// clears the field.
func ParseMergePatch(doc map[string]json.RawMessage) (Patch, error) {
	patch := make(Patch, len(doc))
	verr := domain.NewValidationError()

	for name, raw := range doc {
		f, ok := lookupField(name)
		if !ok {
			verr.Add(name, domain.ErrMsgUnknownPatchPath)
			continue
		}
		value, ok := decodeText(raw)
		if !ok {
			verr.Add(name, domain.ErrMsgPatchValueNotText)
			continue
		}
		if value == nil {
			patch.Clear(f)
		} else {
			patch.Set(f, *value)
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return patch, nil
}

// decodeText accepts a JSON string or null. An absent value counts as null.
func decodeText(raw json.RawMessage) (*string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}
