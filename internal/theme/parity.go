package theme

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ParityReport lists projected color names present in one set but not the other.
type ParityReport struct {
	OnlyInA []string
	OnlyInB []string
}

// OK reports whether both sets project the same names.
func (r ParityReport) OK() bool {
	return len(r.OnlyInA) == 0 && len(r.OnlyInB) == 0
}

func (r ParityReport) String() string {
	if r.OK() {
		return "color sets match"
	}
	var b strings.Builder
	if len(r.OnlyInA) > 0 {
		fmt.Fprintf(&b, "only in first: %s", strings.Join(r.OnlyInA, ", "))
	}
	if len(r.OnlyInB) > 0 {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "only in second: %s", strings.Join(r.OnlyInB, ", "))
	}
	return b.String()
}

// CheckParity compares the projected names (including group members) of two
// color sets. Switching between sets that differ leaves stale properties.
func CheckParity(a, b Colors) ParityReport {
	onlyA, onlyB := lo.Difference(a.Keys(), b.Keys())
	return ParityReport{OnlyInA: onlyA, OnlyInB: onlyB}
}
