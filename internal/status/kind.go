// Package status models time-limited actor modifiers.
//
// The set of effects is closed: Frozen, Poisoned, Doomed and Shielded. Each
// kind's magnitude guard and tick behavior is looked up from a table indexed
// by Kind, resolved once when the effect is applied.
package status

import (
	"fmt"
	"strings"
)

// Kind identifies a status effect.
type Kind uint8

const (
	KindNone Kind = iota
	Frozen        // Magnitude: fraction of movement suppressed, [0, 1]
	Poisoned      // Magnitude: damage per second, dealt every PoisonInterval
	Doomed        // Magnitude: burst damage dealt once when the effect runs out
	Shielded      // Magnitude: damage absorbed before the shield breaks
	kindCount
)

// Kinds lists every real effect kind in tick order.
var Kinds = [...]Kind{Frozen, Poisoned, Doomed, Shielded}

// String returns the lowercase name used in config files and logs.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case Frozen:
		return "frozen"
	case Poisoned:
		return "poisoned"
	case Doomed:
		return "doomed"
	case Shielded:
		return "shielded"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the real effect kinds.
func (k Kind) Valid() bool {
	return k > KindNone && k < kindCount
}

// ParseKind resolves a config name to a Kind. The empty string is KindNone.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return KindNone, nil
	case "frozen", "freeze", "slow":
		return Frozen, nil
	case "poisoned", "poison":
		return Poisoned, nil
	case "doomed", "doom":
		return Doomed, nil
	case "shielded", "shield":
		return Shielded, nil
	default:
		return KindNone, fmt.Errorf("status: unknown effect %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so kinds read naturally in YAML.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
