package paypal

import "strings"

const relParent = "up"

// ExtractParentID resolves the parent transaction id of a payment entry from
// its link relations: the "up" link points at the parent resource and its
// last path segment is the parent's id. This is the only place that knows
// about the processor's link-format convention.
func ExtractParentID(links []Link) (string, bool) {
	for _, link := range links {
		if link.Rel != relParent {
			continue
		}

		href := link.Href
		if i := strings.IndexAny(href, "?#"); i >= 0 {
			href = href[:i]
		}
		href = strings.TrimRight(href, "/")

		segment := href[strings.LastIndex(href, "/")+1:]
		if segment == "" {
			return "", false
		}

		return segment, true
	}

	return "", false
}
