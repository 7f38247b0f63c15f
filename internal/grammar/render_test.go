package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tree, err := Parse(`+ham "a b"`)
	require.NoError(t, err)

	want := `query
  clause @0
    operator @0 "+"
    term @1 "ham"
  clause @5
    phrase @5..10
      term @6 "a"
      term @8 "b"
`
	assert.Equal(t, want, Render(tree))
}

func TestRender_Empty(t *testing.T) {
	tree, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, "query\n", Render(tree))
}
