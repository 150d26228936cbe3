package grammar

import (
	"fmt"
	"strings"
)

// Dialect selects one of the built-in grammars.
type Dialect uint8

const (
	// PVL is the CCSDS Parameter Value Language, the base grammar.
	PVL Dialect = iota
	// ODL is the PDS3 Object Description Language.
	ODL
	// Omni accepts the union of what PVL, ODL and ISIS writers produce.
	Omni

	dialectCount
)

func (d Dialect) String() string {
	switch d {
	case PVL:
		return "pvl"
	case ODL:
		return "odl"
	case Omni:
		return "omni"
	default:
		return "unknown"
	}
}

func (d Dialect) GoString() string {
	return fmt.Sprintf("Dialect(%s)", d.String())
}

// Dialects returns the built-in dialects in declaration order.
func Dialects() []Dialect {
	out := make([]Dialect, 0, dialectCount)
	for d := PVL; d < dialectCount; d++ {
		out = append(out, d)
	}
	return out
}

// ParseDialect converts a name to a Dialect. "isis" maps to Omni: ISIS labels
// differ from PDS3 only in ways the permissive grammar already accepts.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pvl":
		return PVL, nil
	case "odl", "pds3":
		return ODL, nil
	case "omni", "isis":
		return Omni, nil
	default:
		return PVL, fmt.Errorf("invalid dialect: %q (expected: pvl|odl|omni)", s)
	}
}
