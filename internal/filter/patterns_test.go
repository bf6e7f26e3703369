package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompiledForCachesByContent(t *testing.T) {
	cache := NewPatternCache(zap.NewNop())

	first := cache.CompiledFor([]string{"pricing", "demo"})
	second := cache.CompiledFor([]string{"pricing", "demo"})

	assert.Equal(t, 1, cache.Recompiles(), "identical list must not recompile")
	require.Len(t, second, 2)
	assert.True(t, &first[0] == &second[0], "cache hit must return the stored matcher list")
}

func TestCompiledForRecompilesOnChange(t *testing.T) {
	cache := NewPatternCache(zap.NewNop())

	cache.CompiledFor([]string{"pricing", "demo"})
	cache.CompiledFor([]string{"pricing", "trial"})
	assert.Equal(t, 2, cache.Recompiles(), "content change must recompile")

	cache.CompiledFor([]string{"trial", "pricing"})
	assert.Equal(t, 3, cache.Recompiles(), "order change must recompile")
}

func TestCompiledForSkipsInvalidPattern(t *testing.T) {
	cache := NewPatternCache(zap.NewNop())

	matchers := cache.CompiledFor([]string{"pricing", "[", "demo"})

	require.Len(t, matchers, 2, "invalid pattern is skipped, not fatal")
	assert.True(t, matchers[0].MatchString("ask about PRICING plans"))
	assert.True(t, matchers[1].MatchString("book a Demo"))
}

func TestCompiledForCaseInsensitive(t *testing.T) {
	cache := NewPatternCache(zap.NewNop())

	matchers := cache.CompiledFor([]string{"hello\\s+world"})

	require.Len(t, matchers, 1)
	assert.True(t, matchers[0].MatchString("well HELLO  World!"))
	assert.False(t, matchers[0].MatchString("helloworld"))
}
