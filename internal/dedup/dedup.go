// Package dedup implements the 3-gram deduplicator (spec §4.6): a 3-word
// unicity constraint over the compressed output, collapsing repeated
// word-triples into ".." markers.
package dedup

import "strings"

// Lines enforces 3-gram unicity across lines independently per call: no
// ordered word-triple appears twice across the whole input. The first
// occurrence of each triple is kept; subsequent repeats are replaced with a
// single ".." token, with consecutive repeats coalesced into one marker.
func Lines(lines []string) []string {
	seen := make(map[[3]string]bool)
	output := make([]string, len(lines))

	for i, line := range lines {
		words := strings.Fields(line)
		if len(words) < 3 {
			output[i] = line
			continue
		}

		skip := make([]bool, len(words))
		for j := 0; j < len(words); {
			if j+2 < len(words) {
				tri := [3]string{words[j], words[j+1], words[j+2]}
				if seen[tri] {
					skip[j], skip[j+1], skip[j+2] = true, true, true
					j += 3
					continue
				}
				seen[tri] = true
				j++
				continue
			}
			j++
		}

		var out []string
		for j := 0; j < len(words); {
			if skip[j] {
				for j < len(words) && skip[j] {
					j++
				}
				out = append(out, "..")
				continue
			}
			out = append(out, words[j])
			j++
		}
		output[i] = strings.Join(out, " ")
	}

	return output
}
