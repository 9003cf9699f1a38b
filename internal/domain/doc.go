package domain

import (
	"regexp"
	"strings"
)

// Well known documentation tags.
const (
	TagDeprecated = "deprecated"
	TagSince      = "since"
	TagAuthor     = "author"
	TagName       = "name"
	TagTitle      = "title"
)

var (
	docTagRegex       = regexp.MustCompile(`^@([A-Za-z][A-Za-z0-9_-]*)\s*(.*)$`)
	goDeprecatedRegex = regexp.MustCompile(`^Deprecated:\s*(.*)$`)
)

// Doc is the parsed documentation of a type or member.
type Doc struct {
	Summary     string
	Description string
	// Params maps a parameter name to its description (@param name text).
	Params map[string]string
	// Tags holds every other @tag, keyed by lower-case tag name.
	Tags map[string]string
}

// ParseDoc parses a documentation comment. The first paragraph becomes the
// summary; "@tag value" lines and Go "Deprecated:" paragraphs become tags.
func ParseDoc(text string) Doc {
	var (
		doc        Doc
		paragraphs [][]string
		current    []string
	)

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, current)
			current = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "//"))
		if line == "" {
			flush()
			continue
		}

		if m := goDeprecatedRegex.FindStringSubmatch(line); m != nil {
			flush()
			doc.setTag(TagDeprecated, m[1])
			continue
		}

		if m := docTagRegex.FindStringSubmatch(line); m != nil {
			flush()
			name := strings.ToLower(m[1])
			value := strings.TrimSpace(m[2])
			if name == "param" {
				doc.setParam(value)
				continue
			}
			doc.setTag(name, value)
			continue
		}

		current = append(current, line)
	}
	flush()

	if len(paragraphs) > 0 {
		doc.Summary = strings.Join(paragraphs[0], " ")
	}
	rest := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs[min(1, len(paragraphs)):] {
		rest = append(rest, strings.Join(p, " "))
	}
	doc.Description = strings.Join(rest, "\n\n")

	return doc
}

func (d *Doc) setTag(name, value string) {
	if d.Tags == nil {
		d.Tags = make(map[string]string)
	}
	d.Tags[name] = value
}

func (d *Doc) setParam(value string) {
	name, text, _ := strings.Cut(value, " ")
	if name == "" {
		return
	}
	if d.Params == nil {
		d.Params = make(map[string]string)
	}
	d.Params[name] = strings.TrimSpace(text)
}

// Text returns the summary and description as one block of text.
func (d Doc) Text() string {
	switch {
	case d.Description == "":
		return d.Summary
	case d.Summary == "":
		return d.Description
	}
	return d.Summary + "\n\n" + d.Description
}

// Tag returns the value of a documentation tag.
func (d Doc) Tag(name string) (string, bool) {
	v, ok := d.Tags[name]
	return v, ok
}

// Deprecated reports whether the doc carries a deprecation marker.
func (d Doc) Deprecated() bool {
	_, ok := d.Tags[TagDeprecated]
	return ok
}

// IsZero reports whether nothing was documented.
func (d Doc) IsZero() bool {
	return d.Summary == "" && d.Description == "" && len(d.Tags) == 0 && len(d.Params) == 0
}
