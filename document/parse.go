package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// ParseError reports malformed or rejected XML input. Callers distinguish
// it from I/O failures to classify bad submissions separately from
// unreadable files.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse define.xml: " + e.Reason + ": " + e.Err.Error()
	}
	return "parse define.xml: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse builds the read-only tree from XML input. External entity and DTD
// processing is disabled; the decoder only resolves the document's own
// namespace declarations.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	// Reject any charset requiring an external reader; define.xml is UTF-8.
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	var stack []*Element
	var root *Element

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: "malformed XML", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem := &Element{
				Space: t.Name.Space,
				Local: t.Name.Local,
				Attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
				elem.Parent = parent
			} else if root == nil {
				root = elem
			} else {
				return nil, &ParseError{Reason: "multiple root elements"}
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.Directive:
			if bytes.HasPrefix(bytes.TrimSpace(t), []byte("DOCTYPE")) {
				return nil, &ParseError{Reason: "DOCTYPE declarations are not allowed"}
			}
		}
	}

	if root == nil {
		return nil, &ParseError{Reason: "document has no root element"}
	}

	return &Document{root: root}, nil
}

// ParseFile parses a define.xml file from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open define.xml %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		// Namespace declarations are decoder concerns, not document data.
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{
			Space: a.Name.Space,
			Local: a.Name.Local,
			Value: a.Value,
		})
	}
	return out
}
