package bot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xaenox/gatekeeper-bot/internal/filter"
	"go.uber.org/zap"
)

func testBot(t *testing.T, patterns filter.PatternSource) *Bot {
	t.Helper()

	policies := filter.NewPolicyCache(filepath.Join(t.TempDir(), "admin_policy.json"), zap.NewNop())
	engine := filter.NewEngine("telegram", "", patterns, policies, zap.NewNop())
	return &Bot{filter: engine, logger: zap.NewNop()}
}

func TestShouldDropForwardsVerdict(t *testing.T) {
	b := testBot(t, func() []string { return []string{"pricing"} })

	assert.False(t, b.shouldDrop(filter.Message{Sender: "customer", Body: "pricing info?"}))
	assert.True(t, b.shouldDrop(filter.Message{Sender: "customer", Body: "hello there"}))
}

func TestShouldDropFailsOpenOnPanic(t *testing.T) {
	b := testBot(t, func() []string { panic("config store exploded") })

	// A broken filter must never cost a message: the wrapper converts the
	// failure to an ALLOW verdict.
	assert.False(t, b.shouldDrop(filter.Message{Sender: "customer", Body: "hello there"}))
}
