package domain

import "sort"

// NormalizeTags returns a sorted, deduplicated copy of tags with empty
// names dropped. Tag membership is a set; the repository never stores the
// same tag twice on one bookmark.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ReplaceTag returns the tag set with old replaced by new, using set
// semantics: if the set already contains new, the result holds a single
// occurrence. The input is not modified.
func ReplaceTag(tags []string, old, new string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == old {
			continue
		}
		out = append(out, t)
	}
	out = append(out, new)
	return NormalizeTags(out)
}

// AddTags returns the tag set extended with the given names (set semantics).
func AddTags(tags []string, names ...string) []string {
	out := append(append([]string(nil), tags...), names...)
	return NormalizeTags(out)
}

// RemoveTags returns the tag set without the given names.
func RemoveTags(tags []string, names ...string) []string {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if drop[t] {
			continue
		}
		out = append(out, t)
	}
	return NormalizeTags(out)
}
