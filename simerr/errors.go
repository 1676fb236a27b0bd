// Package simerr defines the typed error kinds the simulation core can
// raise, so callers can branch on error kind with errors.As instead of
// matching strings.
package simerr

import "fmt"

// ConfigInvalid reports a malformed configuration, raised by New and
// fatal: the server cannot be constructed.
type ConfigInvalid struct {
	Reason string
}

func (e *ConfigInvalid) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// NewConfigInvalid builds a ConfigInvalid with a formatted reason.
func NewConfigInvalid(format string, args ...interface{}) *ConfigInvalid {
	return &ConfigInvalid{Reason: fmt.Sprintf(format, args...)}
}

// UnknownPlayer reports an action addressed to a player id the world
// does not know about. The tick is not advanced when this is returned.
type UnknownPlayer struct {
	PlayerID uint64
}

func (e *UnknownPlayer) Error() string {
	return fmt.Sprintf("unknown player id %d", e.PlayerID)
}

// BadAction reports a direction that is non-finite, or not unitizable
// when the action type demanded a unit vector. The offending player is
// treated as having issued a stop action for the current action-tick;
// this error is informational, not fatal.
type BadAction struct {
	PlayerID uint64
	Reason   string
}

func (e *BadAction) Error() string {
	return fmt.Sprintf("bad action from player %d: %s", e.PlayerID, e.Reason)
}

// Invariant reports a violated internal invariant (body outside the
// border, negative size, a removed body still referenced by a
// manager). These are only checked in debug builds; see config.World's
// DebugChecks field.
type Invariant struct {
	Reason string
}

func (e *Invariant) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// NewInvariant builds an Invariant with a formatted reason.
func NewInvariant(format string, args ...interface{}) *Invariant {
	return &Invariant{Reason: fmt.Sprintf(format, args...)}
}
