package content

import (
	"regexp"
	"slices"
	"sort"
	"strings"
)

var (
	reSlugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	reSlugSpace  = regexp.MustCompile(`\s+`)
	reSlugHyphen = regexp.MustCompile(`-+`)
	reListSep    = regexp.MustCompile(`[#\s]+`)
)

// Slugify converts a title to the URL slug stored with an entity.
// Characters outside [a-z0-9], whitespace and '-' are dropped, whitespace
// runs become a single hyphen and hyphen runs collapse. The result never
// starts or ends with a hyphen, so Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugSpace.ReplaceAllString(s, "-")
	s = reSlugHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ParseList splits free-form tag or tech input such as "#go #htmx web" on
// runs of '#' and whitespace. Empty items are dropped; order and duplicates
// are kept.
func ParseList(input string) []string {
	parts := reListSep.Split(input, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatList is the inverse of ParseList for display in an input field.
func FormatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "#" + strings.Join(items, " #")
}

// UniqueTags returns the sorted union of the given tag lists.
func UniqueTags(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return slices.Clip(out)
}

// BlogTags collects the sorted unique tags of blogs.
func BlogTags(blogs []Blog) []string {
	lists := make([][]string, len(blogs))
	for i, b := range blogs {
		lists[i] = b.Tags
	}
	return UniqueTags(lists...)
}

// ProjectTags collects the sorted unique tags of projects.
func ProjectTags(projects []Project) []string {
	lists := make([][]string, len(projects))
	for i, p := range projects {
		lists[i] = p.Tags
	}
	return UniqueTags(lists...)
}
