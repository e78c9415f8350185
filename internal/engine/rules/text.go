// Package rules contains the regexp-driven extraction engines. Each engine
// is deterministic and self-contained: no network, no shared state, output
// depends only on the input text.
package rules

import "strings"

const sentenceTerminators = ".!?\n"

// Context snippets are clipped so one run-on sentence cannot dominate the
// response payload.
const maxSnippetLen = 200

// sentenceAround returns the sentence containing the byte offset, with
// internal whitespace collapsed. Offsets outside the text yield "".
func sentenceAround(text string, offset int) string {
	if offset < 0 || offset >= len(text) {
		return ""
	}
	start := strings.LastIndexAny(text[:offset], sentenceTerminators) + 1
	end := strings.IndexAny(text[offset:], sentenceTerminators)
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	return collapseSpace(text[start:end])
}

// collapseSpace trims the string and folds internal whitespace runs into
// single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clip truncates s to at most max bytes without splitting a rune.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// dedupeKey lowers and collapses a string for use as a seen-map key.
func dedupeKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	return strings.ToLower(collapseSpace(joined))
}

// Sentence-opening words that the case-style pattern can absorb into the
// left-hand party ("In Donoghue v Stevenson ...").
var caseLeadWords = map[string]bool{
	"In": true, "The": true, "See": true, "At": true, "Cf": true,
	"As": true, "Per": true, "Under": true, "Before": true,
	"Following": true, "Applying": true,
}

// trimCaseLead strips leading non-name words from a case-style party.
func trimCaseLead(name string) string {
	for {
		first, rest, found := strings.Cut(name, " ")
		if !found || !caseLeadWords[first] {
			return name
		}
		name = rest
	}
}
