// Package redact scrubs secrets from text before it leaves the machine.
// scribe runs every change digest through Redact before embedding it in an
// inference prompt, so credentials that slipped past the ignore rules are
// not shipped to the API.
package redact

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// Placeholder replaces every detected secret.
const Placeholder = "REDACTED"

// candidatePattern matches alphanumeric runs long enough to be a credential.
var candidatePattern = regexp.MustCompile(`[A-Za-z0-9/+_=-]{10,}`)

// entropyThreshold is the minimum Shannon entropy for a candidate run to be
// treated as a secret. Common identifiers sit well below it; API keys and
// tokens tend to land above 5.0.
const entropyThreshold = 4.5

var (
	detector     *detect.Detector
	detectorOnce sync.Once
)

// secretDetector lazily builds the gitleaks detector with its default rule
// set. A construction failure leaves pattern-based detection disabled; the
// entropy layer still applies.
func secretDetector() *detect.Detector {
	detectorOnce.Do(func() {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			return
		}
		detector = d
	})
	return detector
}

// span is a byte range to blank out.
type span struct{ start, end int }

// String replaces secrets in s with the placeholder using two layers:
// high-entropy candidate runs, and gitleaks' rule set of known secret
// formats. A range flagged by either layer is redacted.
func String(s string) string {
	spans := findSecretSpans(s)
	if len(spans) == 0 {
		return s
	}

	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		b.WriteString(s[prev:sp.start])
		b.WriteString(Placeholder)
		prev = sp.end
	}
	b.WriteString(s[prev:])
	return b.String()
}

// Bytes is a convenience wrapper around String for []byte content.
func Bytes(b []byte) []byte {
	s := string(b)
	redacted := String(s)
	if redacted == s {
		return b
	}
	return []byte(redacted)
}

// ContainsSecret reports whether either detection layer flags s.
func ContainsSecret(s string) bool {
	return len(findSecretSpans(s)) > 0
}

// findSecretSpans returns the merged, sorted byte ranges flagged by both
// detection layers.
func findSecretSpans(s string) []span {
	var spans []span

	for _, loc := range candidatePattern.FindAllStringIndex(s, -1) {
		if shannonEntropy(s[loc[0]:loc[1]]) > entropyThreshold {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}

	if d := secretDetector(); d != nil {
		for _, finding := range d.DetectString(s) {
			if finding.Secret == "" {
				continue
			}
			// A secret may occur more than once; flag every occurrence.
			from := 0
			for {
				idx := strings.Index(s[from:], finding.Secret)
				if idx < 0 {
					break
				}
				abs := from + idx
				spans = append(spans, span{abs, abs + len(finding.Secret)})
				from = abs + len(finding.Secret)
			}
		}
	}

	return mergeSpans(spans)
}

// mergeSpans sorts spans by start and merges overlapping or touching ones.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
		} else {
			merged = append(merged, sp)
		}
	}
	return merged
}

func shannonEntropy(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	freq := make(map[byte]int)
	for i := range len(s) {
		freq[s[i]]++
	}
	length := float64(len(s))
	var entropy float64
	for _, count := range freq {
		p := float64(count) / length
		entropy -= p * math.Log2(p)
	}
	return entropy
}
