package util

import (
	"path/filepath"
	"strings"
)

// SchemeJunction forces resolution through the classifier whatever the
// wrapped location is.
const SchemeJunction = "x-junction"

// Resource describes what a location points to.
type Resource struct {
	Resource    string `json:"resource"`
	Scheme      string `json:"scheme"`
	ContentType string `json:"content_type"`
}

// IsFile reports whether resource is a local path.
func (r Resource) IsFile() bool {
	return r.Scheme == SchemeFile
}

// SchemeHandlerType is the content type used to look up handlers for
// non-file resources.
func SchemeHandlerType(scheme string) string {
	return "x-scheme-handler/" + scheme
}

// Unwrap removes single level of "x-junction:" wrapping. Reports whether
// anything was removed.
func Unwrap(ref string) (string, bool) {
	m := reScheme.FindStringSubmatch(ref)
	if m == nil || !strings.EqualFold(m[1], SchemeJunction) {
		return ref, false
	}
	rest := ref[len(m[0]):]
	return strings.TrimPrefix(rest, "//"), true
}

// ReadResource classifies ref. File locations get their content type from
// host, everything else gets scheme handler content type. It never fails.
func ReadResource(h Host, ref string) Resource {
	if inner, ok := Unwrap(ref); ok {
		ref = inner
	}
	return ReadLocator(h, ParseWith(h, ref))
}

// ReadLocator classifies already parsed locator. No unwrapping is done, file
// paths are cleaned.
func ReadLocator(h Host, l Locator) Resource {
	if l.IsFile() {
		p := filepath.Clean(l.Path())
		return Resource{
			Resource:    p,
			Scheme:      SchemeFile,
			ContentType: h.ContentType(p),
		}
	}
	res := Resource{
		Resource: l.String(),
		Scheme:   l.Scheme(),
	}
	if res.Scheme != "" {
		res.ContentType = SchemeHandlerType(res.Scheme)
	} else {
		res.ContentType = ContentTypeUnknown
	}
	return res
}
