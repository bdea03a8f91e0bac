package dom

import (
	"regexp"
	"strings"
)

var (
	commentPattern   = regexp.MustCompile(`^<!--([\s\S]*?)-->`)
	textPattern      = regexp.MustCompile(`^[^<]+`)
	startTagPattern  = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9:_-]*)((?:\s+[^\s"'>/=]+(?:\s*=\s*(?:"[^"]*"|'[^']*'))?)*)\s*/?>`)
	attributePattern = regexp.MustCompile(`([^\s"'>/=]+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'))?`)
)

// parseMarkup turns markup into detached nodes owned by od. It tries, in
// order, a comment, a text run and a start tag at the head of the input. A
// non-void element's body runs up to the first literal closing tag of the same
// name, so same-named nested elements are not paired. Input matching nothing,
// such as a stray closing tag, is skipped through the next '>'.
func parseMarkup(w *Window, od *Node, markup string) NodeList {
	log := w.logger().WithField("method", "parseMarkup")
	var nodes NodeList
	rest := markup
	for rest != "" {
		if m := commentPattern.FindStringSubmatch(rest); m != nil {
			nodes = append(nodes, newCommentNode(w, od, m[1]))
			rest = rest[len(m[0]):]
			continue
		}
		if m := textPattern.FindString(rest); m != "" {
			if text := strings.TrimSpace(m); text != "" {
				nodes = append(nodes, newTextNode(w, od, text))
			}
			rest = rest[len(m):]
			continue
		}
		if m := startTagPattern.FindStringSubmatch(rest); m != nil {
			rest = rest[len(m[0]):]
			el, consumed := parseElement(w, od, m[1], m[2], rest)
			rest = rest[consumed:]
			nodes = append(nodes, el)
			continue
		}

		skip := strings.IndexByte(rest, '>') + 1
		if skip == 0 {
			skip = 1
		}
		log.Debugf("[MARKUP]: skipped %q", rest[:skip])
		rest = rest[skip:]
	}
	return nodes
}

// parseElement builds the element opened by a start tag and returns how much
// of rest its body and closing tag consumed.
func parseElement(w *Window, od *Node, name, rawAttrs, rest string) (*Node, int) {
	attrs := attributePattern.FindAllStringSubmatch(rawAttrs, -1)
	var opts ElementCreationOptions
	for _, attr := range attrs {
		if attr[1] == "is" {
			opts.Is = attributeValue(attr)
		}
	}
	el := newElementNode(w, od, name, opts)
	for _, attr := range attrs {
		el.SetAttribute(attr[1], attributeValue(attr))
	}
	if el.Element.void {
		return el, 0
	}

	body, consumed := rest, len(rest)
	if start, end := closingTag(rest, el.Element.LocalName); start != -1 {
		body, consumed = rest[:start], end
	}
	if body != "" {
		el.SetInnerHTML(body)
	}
	return el, consumed
}

// closingTag finds the first </name> in rest, matching name without regard to
// case, and returns its start and end offsets in rest, or -1 and 0.
func closingTag(rest, name string) (int, int) {
	for from := 0; from < len(rest); {
		i := strings.Index(rest[from:], "</")
		if i == -1 {
			break
		}
		start := from + i
		end := start + len("</") + len(name)
		if end < len(rest) && rest[end] == '>' && strings.EqualFold(rest[start+len("</"):end], name) {
			return start, end + 1
		}
		from = start + len("</")
	}
	return -1, 0
}

// attributeValue returns the value of an attribute match. Double quoted values
// may carry &quot; for a literal '"'; a literal "&quot;" inside a double quoted
// value therefore does not survive a round trip.
func attributeValue(match []string) string {
	if match[2] != "" {
		return strings.ReplaceAll(match[2], "&quot;", `"`)
	}
	return match[3]
}
