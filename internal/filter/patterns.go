package filter

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// PatternCache compiles keyword patterns into case-insensitive regexps and
// keeps the result until the pattern list changes. It holds a single slot:
// a new fingerprint discards the previous matcher list entirely.
type PatternCache struct {
	logger *zap.Logger

	mu          sync.Mutex
	fingerprint string
	matchers    []*regexp.Regexp
	recompiles  int
}

func NewPatternCache(logger *zap.Logger) *PatternCache {
	return &PatternCache{logger: logger}
}

// CompiledFor returns compiled matchers for the given pattern list,
// recompiling only when the list's content or order changed since the last
// call. Patterns that fail to compile are skipped, never fatal. Literal
// keywords are compiled as regexps without escaping; a keyword containing
// regex metacharacters is the configuration author's responsibility.
func (c *PatternCache) CompiledFor(patterns []string) []*regexp.Regexp {
	fp := strings.Join(patterns, "\x00")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.matchers != nil && fp == c.fingerprint {
		return c.matchers
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			c.logger.Warn("Skipping invalid keyword pattern",
				zap.String("pattern", p),
				zap.Error(err))
			continue
		}
		compiled = append(compiled, re)
	}

	c.logger.Debug("Recompiled keyword patterns",
		zap.Int("patterns", len(patterns)),
		zap.Int("compiled", len(compiled)))

	c.fingerprint = fp
	c.matchers = compiled
	c.recompiles++
	return compiled
}

// Recompiles reports how many times the cache had to recompile.
func (c *PatternCache) Recompiles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recompiles
}
