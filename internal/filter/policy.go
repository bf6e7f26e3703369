package filter

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SuperUser is one privileged-operator entry in the God Mode roster.
type SuperUser struct {
	Platform         string `json:"platform"`
	Identifier       string `json:"identifier"`
	PasswordRequired bool   `json:"passwordRequired"`
}

// GodModeSettings gates the super-user bypass behind a feature flag.
type GodModeSettings struct {
	Enabled    bool        `json:"enabled"`
	SuperUsers []SuperUser `json:"superUsers"`
}

// PolicyRule is one admin-authored rule. A rule with NoKeywordRestrictions
// set disables keyword filtering entirely while it is enabled.
type PolicyRule struct {
	Enabled               bool   `json:"enabled"`
	TriggerType           string `json:"triggerType"`
	NoKeywordRestrictions bool   `json:"noKeywordRestrictions"`
}

// AdminPolicy is the parsed admin policy file.
type AdminPolicy struct {
	GodMode *GodModeSettings `json:"godMode"`
	Rules   []PolicyRule     `json:"rules"`
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// PolicyCache loads the admin policy file, re-reading only when the file's
// modification time changes. Any stat, read or parse failure yields nil
// for that call; the stored entry is only replaced on a successful parse,
// so a previously read policy keeps being served while the mtime stands
// still. If the file is replaced with identical mtime (coarse filesystem
// clocks), the stale entry is served; known limitation.
type PolicyCache struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	loaded bool
	mtime  time.Time
	policy *AdminPolicy
}

func NewPolicyCache(path string, logger *zap.Logger) *PolicyCache {
	return &PolicyCache{path: path, logger: logger}
}

// Current returns the policy as of the file's current modification time,
// or nil when the file is absent, unreadable or malformed.
func (c *PolicyCache) Current() *AdminPolicy {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && info.ModTime().Equal(c.mtime) {
		return c.policy
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		c.logger.Warn("Failed to read admin policy file",
			zap.String("path", c.path),
			zap.Error(err))
		return nil
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var policy AdminPolicy
	if err := json.Unmarshal(data, &policy); err != nil {
		c.logger.Warn("Failed to parse admin policy file",
			zap.String("path", c.path),
			zap.Error(err))
		return nil
	}

	c.logger.Info("Reloaded admin policy",
		zap.String("path", c.path),
		zap.Time("mtime", info.ModTime()),
		zap.Int("rules", len(policy.Rules)))

	c.loaded = true
	c.mtime = info.ModTime()
	c.policy = &policy
	return c.policy
}
