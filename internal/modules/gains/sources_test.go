package gains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	upstreams := []Upstream{
		{Tag: "stocks1", BaseURL: "http://stocks1:8000"},
		{Tag: "stocks2", BaseURL: "http://stocks2:8000"},
	}

	t.Run("empty selector resolves to all upstreams in order", func(t *testing.T) {
		resolved := Resolve("", upstreams)
		require.Len(t, resolved, 2)
		assert.Equal(t, "stocks1", resolved[0].Tag)
		assert.Equal(t, "stocks2", resolved[1].Tag)
	})

	t.Run("known tag resolves to exactly that upstream", func(t *testing.T) {
		resolved := Resolve("stocks2", upstreams)
		require.Len(t, resolved, 1)
		assert.Equal(t, "stocks2", resolved[0].Tag)
	})

	t.Run("unknown tag resolves to no upstreams", func(t *testing.T) {
		// Deliberate policy: unknown portfolio means no data, not an error
		assert.Empty(t, Resolve("bonds", upstreams))
	})

	t.Run("no upstreams configured", func(t *testing.T) {
		assert.Empty(t, Resolve("", nil))
	})
}
