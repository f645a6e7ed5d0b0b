package whitelist

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-wikitext/internal/yamlutil"
)

// Format identifies a whitelist file encoding.
type Format int

const (
	// FormatYAML is the native format:
	//
	//	elements:
	//	  - name: a
	//	    allowedAttributes: [rel, class, href]
	FormatYAML Format = iota

	// FormatXML reads and writes the HtmlWhiteList XML layout used by
	// existing Roadkill installations.
	FormatXML
)

// ErrUnknownFormat is returned for Format values outside the known set.
var ErrUnknownFormat = errors.New("unknown whitelist format")

// ErrMalformed wraps decoding failures.
var ErrMalformed = errors.New("malformed whitelist")

// FormatForPath picks the format from the file extension. Anything other
// than .xml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return FormatXML
	}
	return FormatYAML
}

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatXML:
		return "xml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

type yamlDocument struct {
	Elements []Element `yaml:"elements"`
}

type xmlDocument struct {
	XMLName  xml.Name     `xml:"HtmlWhiteList"`
	Elements []xmlElement `xml:"ElementWhiteList>HtmlElement"`
}

type xmlElement struct {
	Name       string         `xml:"Name,attr"`
	Attributes []xmlAttribute `xml:"AllowedAttributes>HtmlAttribute"`
}

type xmlAttribute struct {
	Name string `xml:"Name,attr"`
}

// Parse decodes data in the given format and builds a Whitelist.
func Parse(data []byte, format Format) (*Whitelist, error) {
	var elements []Element

	switch format {
	case FormatYAML:
		var doc yamlDocument
		if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		elements = doc.Elements
	case FormatXML:
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrMalformed)
		}
		if len(data) > yamlutil.MaxInputSize {
			return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrMalformed, len(data), yamlutil.MaxInputSize)
		}
		var doc xmlDocument
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		elements = make([]Element, 0, len(doc.Elements))
		for _, e := range doc.Elements {
			attrs := make([]string, 0, len(e.Attributes))
			for _, a := range e.Attributes {
				attrs = append(attrs, a.Name)
			}
			elements = append(elements, Element{Name: e.Name, Attributes: attrs})
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}

	return New(elements)
}

// Marshal encodes w in the given format. Parse(Marshal(w)) yields the same
// elements and attributes in the same order.
func Marshal(w *Whitelist, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yamlutil.Marshal(yamlDocument{Elements: w.Elements()})
	case FormatXML:
		doc := xmlDocument{Elements: make([]xmlElement, 0, w.Len())}
		for _, e := range w.elements {
			xe := xmlElement{Name: e.Name, Attributes: make([]xmlAttribute, 0, len(e.Attributes))}
			for _, a := range e.Attributes {
				xe.Attributes = append(xe.Attributes, xmlAttribute{Name: a})
			}
			doc.Elements = append(doc.Elements, xe)
		}
		out, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding whitelist: %w", err)
		}
		return append([]byte(xml.Header), out...), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}
