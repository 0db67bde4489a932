package namer

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// isExitLabel reports whether label begins with a digit, the marker
// of an exit-number label (spec.md §4.4).
func isExitLabel(label string) bool {
	return len(label) > 0 && label[0] >= '0' && label[0] <= '9'
}

// numericTail returns the leading run of digits in label, e.g.
// "47B" -> "47".
func numericTail(label string) string {
	i := 0
	for i < len(label) && label[i] >= '0' && label[i] <= '9' {
		i++
	}
	return label[:i]
}

// tryExitReduction applies spec.md §4.4's exit-number reduction rule:
// if exactly one ring member's label is an exit number and every
// other member's label is one of the exit label's numeric tail, the
// exit label itself, the exit label with its numeric tail
// parenthesized, or that member's route's short name, the ring
// compresses to "rte1(exit)/rte2/rte3/..." in ring order.
func tryExitReduction(ring *model.ColocationRing) (string, bool) {
	members := ring.Members
	exitIdx := -1
	count := 0
	for i, w := range members {
		if isExitLabel(w.Label) {
			count++
			exitIdx = i
		}
	}
	if count != 1 {
		return "", false
	}

	exitLabel := members[exitIdx].Label
	tail := numericTail(exitLabel)
	parenTail := "(" + tail + ")"

	parts := make([]string, len(members))
	for i, w := range members {
		rn := routeShortName(w.Route)
		if i == exitIdx {
			parts[i] = rn + "(" + exitLabel + ")"
			continue
		}
		switch w.Label {
		case tail, exitLabel, parenTail, rn:
			parts[i] = rn
		default:
			return "", false
		}
	}
	return joinSlash(parts), true
}

func joinSlash(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "/" + p
	}
	return out
}
