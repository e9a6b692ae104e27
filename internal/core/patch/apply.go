// internal/core/patch/apply.go
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Apply runs doc against records and returns the patched sequence.
//
// Records are projected to JSON objects and the operations are applied to
// that working copy, so a failing operation leaves records untouched and
// no partial result is returned. The result is decoded back into T.
// Members T does not know are dropped, except members an operation wrote
// directly (such as /0/colour), which fail with ErrInvalidRecord.
func Apply[T any](records []T, doc Document) ([]T, error) {
	root, err := project(records)
	if err != nil {
		return nil, err
	}

	var targeted []string
	for i, op := range doc {
		root, err = applyOperation(root, op)
		if err != nil {
			return nil, &Error{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
		if member, ok := targetedMember(op); ok {
			targeted = append(targeted, member)
		}
	}

	return restore[T](root, targeted)
}

// targetedMember returns the record member written by op, if any
func targetedMember(op Operation) (string, bool) {
	switch op.Op {
	case OpAdd, OpReplace, OpMove, OpCopy:
	default:
		return "", false
	}
	path, err := parsePointer(op.Path)
	if err != nil || len(path) < 2 {
		return "", false
	}
	return path[1], true
}

func project[T any](records []T) (any, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to project records: %w", err)
	}
	if records == nil {
		data = []byte("[]")
	}
	return decodeValue(data)
}

func restore[T any](root any, targeted []string) ([]T, error) {
	elements, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: document root is no longer an array", ErrInvalidRecord)
	}

	if fields, ok := recordFields(reflect.TypeFor[T]()); ok {
		for _, member := range targeted {
			if _, known := fields[strings.ToLower(member)]; !known {
				return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidRecord, member)
			}
		}
	}

	out := make([]T, 0, len(elements))
	for i, element := range elements {
		if _, ok := element.(map[string]any); !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidRecord, i)
		}

		data, err := json.Marshal(element)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidRecord, i, err)
		}

		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidRecord, i, err)
		}
		out = append(out, record)
	}

	return out, nil
}

// recordFields lists the lower-cased JSON member names of a struct type.
// ok is false for non-struct types, which accept any member.
func recordFields(t reflect.Type) (map[string]struct{}, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}

	fields := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && name == "" {
			if embedded, ok := recordFields(f.Type); ok {
				for k := range embedded {
					fields[k] = struct{}{}
				}
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[strings.ToLower(name)] = struct{}{}
	}
	return fields, true
}

func decodeValue(raw []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func operationValue(op Operation) (any, error) {
	if len(op.Value) == 0 {
		return nil, ErrMissingValue
	}
	v, err := decodeValue(op.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return v, nil
}

func applyOperation(root any, op Operation) (any, error) {
	path, err := parsePointer(op.Path)
	if err != nil {
		return nil, err
	}

	switch op.Op {
	case OpAdd:
		v, err := operationValue(op)
		if err != nil {
			return nil, err
		}
		return addAt(root, path, v)

	case OpRemove:
		out, _, err := removeAt(root, path)
		return out, err

	case OpReplace:
		v, err := operationValue(op)
		if err != nil {
			return nil, err
		}
		return replaceAt(root, path, v)

	case OpMove:
		from, err := parsePointer(op.From)
		if err != nil {
			return nil, err
		}
		out, v, err := removeAt(root, from)
		if err != nil {
			return nil, err
		}
		return addAt(out, path, v)

	case OpCopy:
		from, err := parsePointer(op.From)
		if err != nil {
			return nil, err
		}
		v, err := getAt(root, from)
		if err != nil {
			return nil, err
		}
		return addAt(root, path, deepCopy(v))

	case OpTest:
		want, err := operationValue(op)
		if err != nil {
			return nil, err
		}
		got, err := getAt(root, path)
		if err != nil {
			return nil, err
		}
		if !jsonEqual(got, want) {
			return nil, ErrTestFailed
		}
		return root, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
}

// addAt inserts v at path and returns the (possibly reallocated) node
func addAt(node any, path []string, v any) (any, error) {
	if len(path) == 0 {
		return v, nil
	}
	token, rest := path[0], path[1:]

	switch n := node.(type) {
	case map[string]any:
		if len(rest) == 0 {
			n[token] = v
			return n, nil
		}
		child, ok := n[token]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, token)
		}
		updated, err := addAt(child, rest, v)
		if err != nil {
			return nil, err
		}
		n[token] = updated
		return n, nil

	case []any:
		if len(rest) == 0 {
			idx, err := insertIndex(token, len(n))
			if err != nil {
				return nil, err
			}
			out := make([]any, 0, len(n)+1)
			out = append(out, n[:idx]...)
			out = append(out, v)
			return append(out, n[idx:]...), nil
		}
		idx, err := elementIndex(token, len(n))
		if err != nil {
			return nil, err
		}
		updated, err := addAt(n[idx], rest, v)
		if err != nil {
			return nil, err
		}
		n[idx] = updated
		return n, nil

	default:
		return nil, ErrNotContainer
	}
}

// removeAt deletes the value at path and returns the updated node and the
// removed value
func removeAt(node any, path []string) (any, any, error) {
	if len(path) == 0 {
		return nil, nil, fmt.Errorf("%w: cannot remove the document root", ErrInvalidPointer)
	}
	token, rest := path[0], path[1:]

	switch n := node.(type) {
	case map[string]any:
		child, ok := n[token]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrPathNotFound, token)
		}
		if len(rest) == 0 {
			delete(n, token)
			return n, child, nil
		}
		updated, removed, err := removeAt(child, rest)
		if err != nil {
			return nil, nil, err
		}
		n[token] = updated
		return n, removed, nil

	case []any:
		idx, err := elementIndex(token, len(n))
		if err != nil {
			return nil, nil, err
		}
		if len(rest) == 0 {
			removed := n[idx]
			out := make([]any, 0, len(n)-1)
			out = append(out, n[:idx]...)
			return append(out, n[idx+1:]...), removed, nil
		}
		updated, removed, err := removeAt(n[idx], rest)
		if err != nil {
			return nil, nil, err
		}
		n[idx] = updated
		return n, removed, nil

	default:
		return nil, nil, ErrNotContainer
	}
}

// replaceAt swaps an existing value at path for v
func replaceAt(node any, path []string, v any) (any, error) {
	if len(path) == 0 {
		return v, nil
	}
	token, rest := path[0], path[1:]

	switch n := node.(type) {
	case map[string]any:
		child, ok := n[token]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, token)
		}
		if len(rest) == 0 {
			n[token] = v
			return n, nil
		}
		updated, err := replaceAt(child, rest, v)
		if err != nil {
			return nil, err
		}
		n[token] = updated
		return n, nil

	case []any:
		idx, err := elementIndex(token, len(n))
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			n[idx] = v
			return n, nil
		}
		updated, err := replaceAt(n[idx], rest, v)
		if err != nil {
			return nil, err
		}
		n[idx] = updated
		return n, nil

	default:
		return nil, ErrNotContainer
	}
}

func getAt(node any, path []string) (any, error) {
	for _, token := range path {
		switch n := node.(type) {
		case map[string]any:
			child, ok := n[token]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrPathNotFound, token)
			}
			node = child
		case []any:
			idx, err := elementIndex(token, len(n))
			if err != nil {
				return nil, err
			}
			node = n[idx]
		default:
			return nil, ErrNotContainer
		}
	}
	return node, nil
}

// insertIndex resolves an array token for add, where len is a valid target
func insertIndex(token string, length int) (int, error) {
	if token == AppendMarker {
		return length, nil
	}
	idx, err := arrayIndex(token)
	if err != nil {
		return 0, err
	}
	if idx > length {
		return 0, fmt.Errorf("%w: %d > %d", ErrIndexRange, idx, length)
	}
	return idx, nil
}

// elementIndex resolves an array token that must name an existing element
func elementIndex(token string, length int) (int, error) {
	if token == AppendMarker {
		return 0, fmt.Errorf("%w: %q only valid for add", ErrIndexRange, AppendMarker)
	}
	idx, err := arrayIndex(token)
	if err != nil {
		return 0, err
	}
	if idx >= length {
		return 0, fmt.Errorf("%w: %d >= %d", ErrIndexRange, idx, length)
	}
	return idx, nil
}

func arrayIndex(token string) (int, error) {
	// RFC 6901: no sign, no leading zeros
	if token == "" || (len(token) > 1 && token[0] == '0') || token[0] == '+' || token[0] == '-' {
		return 0, fmt.Errorf("%w: bad array index %q", ErrInvalidPointer, token)
	}
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: bad array index %q", ErrInvalidPointer, token)
	}
	return idx, nil
}

func deepCopy(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, child := range n {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}

// jsonEqual compares decoded JSON values, treating numbers by value so
// that 10 and 10.0 are equal. Money fields project as decimal strings, so
// a number also equals a string holding the same decimal.
func jsonEqual(a, b any) bool {
	switch x := a.(type) {
	case json.Number:
		dx, okX := numericValue(x)
		dy, okY := numericValue(b)
		if okX && okY {
			return dx.Equal(dy)
		}
		y, ok := b.(json.Number)
		return ok && x == y

	case string:
		if y, ok := b.(json.Number); ok {
			return jsonEqual(y, x)
		}
		return reflect.DeepEqual(a, b)

	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !jsonEqual(xv, yv) {
				return false
			}
		}
		return true

	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !jsonEqual(x[i], y[i]) {
				return false
			}
		}
		return true

	default:
		return reflect.DeepEqual(a, b)
	}
}

func numericValue(v any) (decimal.Decimal, bool) {
	var raw string
	switch n := v.(type) {
	case json.Number:
		raw = n.String()
	case string:
		raw = n
	default:
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	return d, err == nil
}
