package canon

import (
	"encoding/json"
	"strings"
)

// Result pairs a matched canon entry with the file it came from.
type Result struct {
	Source string `json:"source"`
	Entry  any    `json:"entry"`
}

// SearchByResource returns canon entries related to an infrastructure
// resource type: signatures whose resource field contains the type, and
// interaction patterns listing it among their terraform resources.
// Missing or malformed canon files contribute nothing.
func SearchByResource(dir, resourceType string) []Result {
	rt := strings.ToLower(resourceType)
	var results []Result

	if sigs, err := LoadSignatures(dir); err == nil {
		for _, sig := range sigs {
			if strings.Contains(strings.ToLower(sig.Resource), rt) {
				results = append(results, Result{Source: SignaturesFile, Entry: sig})
			}
		}
	}

	if patterns, err := LoadInteractions(dir); err == nil {
		for _, p := range patterns {
			for _, res := range p.TerraformResources {
				if strings.Contains(strings.ToLower(res), rt) {
					results = append(results, Result{Source: InteractionsFile, Entry: p})
					break
				}
			}
		}
	}

	return results
}

// SearchByTags returns canon entries carrying any of the given tags.
func SearchByTags(dir string, tags []string) []Result {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[strings.ToLower(t)] = true
	}

	var results []Result

	if sigs, err := LoadSignatures(dir); err == nil {
		for _, sig := range sigs {
			if anyTagMatches(sig.Tags, want) {
				results = append(results, Result{Source: SignaturesFile, Entry: sig})
			}
		}
	}

	if patterns, err := LoadInteractions(dir); err == nil {
		for _, p := range patterns {
			if anyTagMatches(p.Tags, want) {
				results = append(results, Result{Source: InteractionsFile, Entry: p})
			}
		}
	}

	return results
}

func anyTagMatches(tags []string, want map[string]bool) bool {
	for _, t := range tags {
		if want[strings.ToLower(t)] {
			return true
		}
	}
	return false
}

// Dedup removes results whose entries serialize identically, keeping
// first occurrences in order.
func Dedup(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	var unique []Result
	for _, r := range results {
		key, err := json.Marshal(r.Entry)
		if err != nil {
			unique = append(unique, r)
			continue
		}
		if !seen[string(key)] {
			seen[string(key)] = true
			unique = append(unique, r)
		}
	}
	return unique
}
