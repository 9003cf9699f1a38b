package schema

import "sort"

// MediaType describes one content type of a response or request body.
type MediaType struct {
	Schema  *SchemaRef
	Example any
}

// Response is a reusable response component.
type Response struct {
	Description string
	Content     map[string]*MediaType
}

// RequestBody is a reusable request body component.
type RequestBody struct {
	Description string
	Required    bool
	Content     map[string]*MediaType
}

// MediaTypes returns the content types in sorted order.
func MediaTypes(content map[string]*MediaType) []string {
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MergeResponses combines two fragments of the same response. The
// description is a's unless empty; content is unioned by media type and a
// media type present on both sides has its schemas merged.
func MergeResponses(a, b *Response) *Response {
	if a == nil {
		return cloneResponse(b)
	}
	if b == nil {
		return cloneResponse(a)
	}
	return &Response{
		Description: firstString(a.Description, b.Description),
		Content:     mergeContent(a.Content, b.Content),
	}
}

// MergeRequestBodies combines two fragments of the same request body, with
// the same rules as MergeResponses. Required is the OR of both.
func MergeRequestBodies(a, b *RequestBody) *RequestBody {
	if a == nil {
		a = &RequestBody{}
	}
	if b == nil {
		b = &RequestBody{}
	}
	return &RequestBody{
		Description: firstString(a.Description, b.Description),
		Required:    a.Required || b.Required,
		Content:     mergeContent(a.Content, b.Content),
	}
}

func mergeContent(a, b map[string]*MediaType) map[string]*MediaType {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]*MediaType, len(a)+len(b))
	for k, v := range a {
		out[k] = cloneMedia(v)
	}
	for k, right := range b {
		left, ok := out[k]
		if !ok {
			out[k] = cloneMedia(right)
			continue
		}
		merged := &MediaType{Schema: mergeRef(left.Schema, right.Schema), Example: left.Example}
		if merged.Example == nil {
			merged.Example = right.Example
		}
		out[k] = merged
	}
	return out
}

func cloneResponse(r *Response) *Response {
	if r == nil {
		return nil
	}
	return &Response{Description: r.Description, Content: mergeContent(r.Content, nil)}
}

func cloneMedia(m *MediaType) *MediaType {
	if m == nil {
		return &MediaType{}
	}
	return &MediaType{Schema: m.Schema.Clone(), Example: m.Example}
}
