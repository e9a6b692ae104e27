package patch_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/dashboard-be/internal/core/patch"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantError error
	}{
		{
			name:    "decodes_operations",
			body:    `[{"op":"replace","path":"/0/name","value":"x"},{"op":"remove","path":"/1"}]`,
			wantLen: 2,
		},
		{
			name:    "empty_array_is_a_valid_noop",
			body:    `[]`,
			wantLen: 0,
		},
		{
			name:      "null_document",
			body:      `null`,
			wantError: patch.ErrNullDocument,
		},
		{
			name:      "empty_body",
			body:      "  ",
			wantError: patch.ErrNullDocument,
		},
		{
			name:      "object_instead_of_array",
			body:      `{"op":"add"}`,
			wantError: patch.ErrInvalidDocument,
		},
		{
			name:    "unknown_operation_members_are_ignored",
			body:    `[{"op":"remove","path":"/0","value":null,"meta":"grid-row"}]`,
			wantLen: 1,
		},
		{
			name:      "truncated_json",
			body:      `[{"op":"add"`,
			wantError: patch.ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := patch.Decode(strings.NewReader(tt.body))
			if tt.wantError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, doc)
			assert.Len(t, doc, tt.wantLen)
		})
	}
}

func TestNormalizeAppend(t *testing.T) {
	tests := []struct {
		name           string
		op             patch.Operation
		collectionSize int
		wantPath       string
	}{
		{
			name:           "add_at_size_becomes_append",
			op:             patch.Operation{Op: patch.OpAdd, Path: "/2"},
			collectionSize: 2,
			wantPath:       "/-",
		},
		{
			name:           "add_beyond_size_becomes_append",
			op:             patch.Operation{Op: patch.OpAdd, Path: "/17"},
			collectionSize: 2,
			wantPath:       "/-",
		},
		{
			name:           "add_with_nested_path_beyond_size_becomes_append",
			op:             patch.Operation{Op: patch.OpAdd, Path: "/5/notes"},
			collectionSize: 3,
			wantPath:       "/-",
		},
		{
			name:           "add_inside_range_stays_positional",
			op:             patch.Operation{Op: patch.OpAdd, Path: "/1"},
			collectionSize: 2,
			wantPath:       "/1",
		},
		{
			name:           "add_at_zero_on_empty_collection_becomes_append",
			op:             patch.Operation{Op: patch.OpAdd, Path: "/0"},
			collectionSize: 0,
			wantPath:       "/-",
		},
		{
			name:           "append_marker_untouched",
			op:             patch.Operation{Op: patch.OpAdd, Path: "/-"},
			collectionSize: 2,
			wantPath:       "/-",
		},
		{
			name:           "non_numeric_segment_untouched",
			op:             patch.Operation{Op: patch.OpAdd, Path: "/name"},
			collectionSize: 2,
			wantPath:       "/name",
		},
		{
			name:           "root_path_untouched",
			op:             patch.Operation{Op: patch.OpAdd, Path: ""},
			collectionSize: 2,
			wantPath:       "",
		},
		{
			name:           "replace_beyond_size_untouched",
			op:             patch.Operation{Op: patch.OpReplace, Path: "/9"},
			collectionSize: 2,
			wantPath:       "/9",
		},
		{
			name:           "remove_beyond_size_untouched",
			op:             patch.Operation{Op: patch.OpRemove, Path: "/9"},
			collectionSize: 2,
			wantPath:       "/9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := patch.Document{tt.op}
			patch.NormalizeAppend(doc, tt.collectionSize)
			assert.Equal(t, tt.wantPath, doc[0].Path)
			assert.Equal(t, tt.op.Op, doc[0].Op)
		})
	}
}

func TestNormalizeAppend_MixedDocument(t *testing.T) {
	doc := patch.Document{
		{Op: patch.OpReplace, Path: "/0/name", Value: json.RawMessage(`"a"`)},
		{Op: patch.OpAdd, Path: "/3", Value: json.RawMessage(`{}`)},
		{Op: patch.OpAdd, Path: "/0", Value: json.RawMessage(`{}`)},
		{Op: patch.OpRemove, Path: "/1"},
	}

	patch.NormalizeAppend(doc, 3)

	assert.Equal(t, "/0/name", doc[0].Path)
	assert.Equal(t, "/-", doc[1].Path)
	assert.Equal(t, "/0", doc[2].Path)
	assert.Equal(t, "/1", doc[3].Path)
}

func TestError_Unwrap(t *testing.T) {
	err := error(&patch.Error{Index: 3, Op: patch.OpRemove, Path: "/9", Err: patch.ErrIndexRange})

	var perr *patch.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Index)
	assert.ErrorIs(t, err, patch.ErrIndexRange)
	assert.Contains(t, err.Error(), "operation 3 (remove /9)")
}
