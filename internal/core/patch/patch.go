// internal/core/patch/patch.go

// Package patch implements the JSON-Patch subset used to edit ordered
// record collections: decoding, append normalization and an atomic
// interpreter over a sequence of records.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OpKind is a JSON-Patch operation name
type OpKind string

// Operation kinds
const (
	OpAdd     OpKind = "add"
	OpRemove  OpKind = "remove"
	OpReplace OpKind = "replace"
	OpMove    OpKind = "move"
	OpCopy    OpKind = "copy"
	OpTest    OpKind = "test"
)

// AppendMarker is the final pointer token meaning "end of the sequence"
const AppendMarker = "-"

var (
	ErrNullDocument    = errors.New("patch document is null")
	ErrInvalidDocument = errors.New("invalid patch document")
	ErrUnknownOp       = errors.New("unknown operation")
	ErrMissingValue    = errors.New("operation requires a value")
	ErrInvalidPointer  = errors.New("invalid pointer")
	ErrPathNotFound    = errors.New("path not found")
	ErrIndexRange      = errors.New("index out of range")
	ErrNotContainer    = errors.New("target is not an object or array")
	ErrTestFailed      = errors.New("test operation failed")
	ErrInvalidRecord   = errors.New("patched record does not match the record shape")
)

// Operation is one JSON-Patch instruction
type Operation struct {
	Op    OpKind          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Document is an ordered list of operations
type Document []Operation

// Error reports the operation that made a document fail
type Error struct {
	Index int
	Op    OpKind
	Path  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %v", e.Index, e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Decode reads a patch document. A JSON null yields ErrNullDocument so
// callers can reject it before touching any state.
func Decode(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrNullDocument
	}

	// members an operation does not define are ignored
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc == nil {
		doc = Document{}
	}

	return doc, nil
}

// NormalizeAppend rewrites add operations whose first path segment is an
// index at or beyond collectionSize to the append marker. Grid clients emit
// a numeric placeholder index for new rows; the intended target is the end
// of the sequence. In-range adds stay positional inserts and paths whose
// first segment is not an integer are left alone.
func NormalizeAppend(doc Document, collectionSize int) {
	for i := range doc {
		op := &doc[i]
		if op.Op != OpAdd {
			continue
		}

		segments := strings.Split(op.Path, "/")
		if len(segments) < 2 {
			continue
		}

		index, err := strconv.Atoi(segments[1])
		if err != nil {
			continue
		}

		if index >= collectionSize {
			op.Path = "/" + AppendMarker
		}
	}
}

// parsePointer splits an RFC 6901 pointer into unescaped tokens
func parsePointer(p string) ([]string, error) {
	if p == "" {
		return nil, nil
	}
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPointer, p)
	}

	tokens := strings.Split(p[1:], "/")
	for i, t := range tokens {
		t = strings.ReplaceAll(t, "~1", "/")
		tokens[i] = strings.ReplaceAll(t, "~0", "~")
	}
	return tokens, nil
}
