package filter

import (
	"strings"

	"go.uber.org/zap"
)

// Message is one inbound direct message as seen by the admission filter.
// The sender identifier is passed raw and may carry a transport domain
// suffix (e.g. "@s.whatsapp.net").
type Message struct {
	Sender string
	Body   string
}

// Verdict is the admission decision for one message.
type Verdict int

const (
	VerdictAllow Verdict = iota
	VerdictDrop
)

func (v Verdict) String() string {
	if v == VerdictDrop {
		return "drop"
	}
	return "allow"
}

// Control commands must always reach the agent so it can perform the
// activation/deactivation side effect; the filter never swallows them.
const (
	godModeActivatePrefix = "!godmode "
	exitCommand           = "/exit"
	godModeOffCommand     = "/godmode off"
)

// PatternSource supplies the current keyword pattern list. It is consulted
// fresh on every evaluation; only the compiled form is cached. Returning
// an empty list disables filtering.
type PatternSource func() []string

// Engine decides whether an inbound direct message is worth dispatching to
// the agent. Everything the decision needs is held by the instance, so
// independent engines (e.g. per test) never share state.
type Engine struct {
	platform     string
	domainSuffix string
	patterns     PatternSource
	policies     *PolicyCache
	compiled     *PatternCache
	counters     *Counters
	logger       *zap.Logger
}

func NewEngine(platform, domainSuffix string, patterns PatternSource, policies *PolicyCache, logger *zap.Logger) *Engine {
	return &Engine{
		platform:     platform,
		domainSuffix: domainSuffix,
		patterns:     patterns,
		policies:     policies,
		compiled:     NewPatternCache(logger),
		counters:     &Counters{},
		logger:       logger,
	}
}

// Counters exposes the session totals for diagnostic reporting.
func (e *Engine) Counters() *Counters {
	return e.counters
}

// Evaluate runs the admission rules in fixed precedence and returns the
// verdict. Internal failures degrade toward VerdictAllow; the engine
// itself never panics by design, and the caller additionally wraps the
// call fail-open.
func (e *Engine) Evaluate(msg Message) Verdict {
	keywords := e.patterns()
	if len(keywords) == 0 {
		return VerdictAllow
	}

	if policy := e.policies.Current(); policy != nil {
		if e.isSuperUser(policy, msg.Sender) {
			e.logger.Info("Allowing message: super-user bypass",
				zap.String("sender", msg.Sender))
			return VerdictAllow
		}
		if hasUnrestrictedRule(policy) {
			e.logger.Info("Allowing message: rule without keyword restrictions is active")
			return VerdictAllow
		}
	}

	if isControlCommand(msg.Body) {
		e.logger.Info("Allowing message: control command",
			zap.String("sender", msg.Sender))
		return VerdictAllow
	}

	body := msg.Body
	for _, matcher := range e.compiled.CompiledFor(keywords) {
		if matcher.MatchString(body) {
			e.counters.RecordAllow()
			e.logger.Info("Allowing message: keyword match",
				zap.String("sender", msg.Sender),
				zap.String("pattern", matcher.String()))
			return VerdictAllow
		}
	}

	e.counters.RecordDrop()
	snapshot := e.counters.Snapshot()
	e.logger.Info("Dropping message: no keyword match",
		zap.String("sender", msg.Sender),
		zap.Int64("dropped_total", snapshot.Dropped),
		zap.Int64("estimated_cost_saved", snapshot.CostSaved))
	return VerdictDrop
}

// isSuperUser reports whether the sender is on the passwordless God Mode
// roster for this transport. Identifiers are compared via their phone
// variant sets so any equivalent representation matches.
func (e *Engine) isSuperUser(policy *AdminPolicy, sender string) bool {
	god := policy.GodMode
	if god == nil || !god.Enabled || len(god.SuperUsers) == 0 {
		return false
	}

	id := sender
	if e.domainSuffix != "" {
		id = strings.TrimSuffix(id, e.domainSuffix)
	}
	senderVariants := Variants(id)

	for _, su := range god.SuperUsers {
		if su.PasswordRequired || !strings.EqualFold(su.Platform, e.platform) {
			continue
		}
		if intersects(senderVariants, Variants(su.Identifier)) {
			return true
		}
	}
	return false
}

// hasUnrestrictedRule reports whether any enabled non-lead rule waives
// keyword restrictions, which turns the filter off wholesale.
func hasUnrestrictedRule(policy *AdminPolicy) bool {
	for _, rule := range policy.Rules {
		if rule.Enabled && rule.TriggerType != "lead" && rule.NoKeywordRestrictions {
			return true
		}
	}
	return false
}

func isControlCommand(body string) bool {
	b := strings.ToLower(strings.TrimSpace(body))
	if strings.HasPrefix(b, godModeActivatePrefix) {
		return true
	}
	return b == exitCommand || b == godModeOffCommand
}
