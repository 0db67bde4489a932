package datacheck

import "strings"

// FPEntry is one line of datacheckfps.csv: the six ';'-separated
// fields (spec.md §6).
type FPEntry struct {
	Route  string
	Label1 string
	Label2 string
	Label3 string
	Code   string
	Info   string
}

func (f *FPEntry) key() [5]string {
	return [5]string{f.Route, f.Label1, f.Label2, f.Label3, f.Code}
}

// ParseFPEntry parses one ';'-separated datacheckfps.csv line.
func ParseFPEntry(line string) (FPEntry, bool) {
	fields := strings.Split(line, ";")
	if len(fields) != 6 {
		return FPEntry{}, false
	}
	return FPEntry{
		Route:  fields[0],
		Label1: fields[1],
		Label2: fields[2],
		Label3: fields[3],
		Code:   fields[4],
		Info:   fields[5],
	}, true
}

// intentionalSuffixes are stripped from nmpfps.log lines before
// matching (spec.md §6, SPEC_FULL §4 item 2).
var intentionalSuffixes = []string{
	" [LOOKS INTENTIONAL]",
	" [SOME LOOK INTENTIONAL]",
}

// StripIntentionalSuffix removes a trailing "[...INTENTIONAL]"
// annotation from an nmpfps.log line, if present.
func StripIntentionalSuffix(line string) string {
	for _, suf := range intentionalSuffixes {
		if strings.HasSuffix(line, suf) {
			return line[:len(line)-len(suf)]
		}
	}
	return line
}

// ReconcileResult carries the three FP-reconciliation outcomes named
// in spec.md §4.5.
type ReconcileResult struct {
	// NearMatches are FPs whose first five fields matched but whose
	// info differed: a "CHANGETO" suggestion for nearmatchfps.log.
	NearMatches []string
	// Unmatched are FPs that matched no entry at all.
	Unmatched []FPEntry
	// Warnings cover allow-listed codes an FP attempted to suppress.
	Warnings []string
}

// Reconcile applies datacheckfps.csv entries against l's collected
// entries (spec.md §4.5): an FP entry whose first five fields and
// info both match marks that entry FalsePositive and is consumed; a
// first-five match with differing info becomes a CHANGETO suggestion;
// an FP entry matching nothing at all is reported unmatched. FP
// entries targeting an always-error code are rejected with a warning
// and otherwise ignored.
func (l *List) Reconcile(fps []FPEntry) ReconcileResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	var res ReconcileResult
	byKey := make(map[[5]string][]*Entry)
	for _, e := range l.entries {
		byKey[e.key()] = append(byKey[e.key()], e)
	}

	for _, fp := range fps {
		if alwaysError[fp.Code] {
			res.Warnings = append(res.Warnings, "FP entry for always-error code "+fp.Code+" on "+fp.Route+" ignored")
			continue
		}
		candidates := byKey[fp.key()]
		if len(candidates) == 0 {
			res.Unmatched = append(res.Unmatched, fp)
			continue
		}
		matched := false
		for _, e := range candidates {
			if e.Info == fp.Info {
				e.FalsePositive = true
				matched = true
				break
			}
		}
		if !matched {
			// First five fields match some entry, but info differs
			// for all of them: suggest a CHANGETO using the first
			// candidate's actual info.
			res.NearMatches = append(res.NearMatches,
				"CHANGETO;"+fp.Route+";"+fp.Label1+";"+fp.Label2+";"+fp.Label3+";"+fp.Code+";"+candidates[0].Info)
		}
	}
	return res
}
