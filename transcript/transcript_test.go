package transcript

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscriptSumMatchesManualSHA256(t *testing.T) {
	tr := New()
	tr.Append([]byte("client hello bytes"))
	tr.Append([]byte("server hello bytes"))

	want := sha256.Sum256([]byte("client hello bytesserver hello bytes"))
	require.Equal(t, want[:], tr.Sum())
}

func TestTranscriptSumIsNonDestructive(t *testing.T) {
	tr := New()
	tr.Append([]byte("message one"))

	first := tr.Sum()
	second := tr.Sum()
	require.Equal(t, first, second)

	tr.Append([]byte("message two"))
	third := tr.Sum()
	require.NotEqual(t, second, third)
}

func TestTranscriptLen(t *testing.T) {
	tr := New()
	require.Equal(t, 0, tr.Len())
	tr.Append([]byte("abc"))
	require.Equal(t, 3, tr.Len())
}
