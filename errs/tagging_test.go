package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTag_NilErrIsNil(t *testing.T) {
	require.NoError(t, Tag(nil, "op-1", 3))
}

func TestTag_RoundTripsIDAndIndex(t *testing.T) {
	inner := errors.New("dial failed")
	tagged := Tag(inner, "shard-7", 2)

	require.ErrorIs(t, tagged, inner)

	id, ok := ExtractOpID(tagged)
	require.True(t, ok)
	require.Equal(t, "shard-7", id)

	idx, ok := ExtractOpIndex(tagged)
	require.True(t, ok)
	require.Equal(t, 2, idx)
}

func TestTag_NilIDReportsAbsent(t *testing.T) {
	tagged := Tag(errors.New("x"), nil, 0)
	_, ok := ExtractOpID(tagged)
	require.False(t, ok)
}

func TestExtract_AbsentOnUntaggedError(t *testing.T) {
	_, ok := ExtractOpID(errors.New("untagged"))
	require.False(t, ok)
	_, ok = ExtractOpIndex(errors.New("untagged"))
	require.False(t, ok)
}

func TestTaggedError_FormatVerbs(t *testing.T) {
	tagged := Tag(errors.New("boom"), "op-9", 1)

	require.Equal(t, "boom", fmt.Sprintf("%s", tagged))
	require.Equal(t, `"boom"`, fmt.Sprintf("%q", tagged))
	require.Contains(t, fmt.Sprintf("%+v", tagged), "op-9")
}
