package feed

import (
	"encoding/xml"
	"html"
	"strings"

	"github.com/mvasilj/content-scout/internal/apperr"
)

// xmlNode is a minimal DOM over encoding/xml. The decoders need namespace
// checks, local-name matching across prefixes and ordered child traversal,
// which the streaming decoder does not give directly.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Chardata string     `xml:",chardata"`
}

func parseXMLRoot(content []byte) (*xmlNode, error) {
	var root xmlNode
	if err := xml.Unmarshal(content, &root); err != nil {
		return nil, apperr.NewParseWrap("Response body is not valid XML.", err)
	}
	return &root, nil
}

func (n *xmlNode) localName() string {
	return strings.ToLower(n.XMLName.Local)
}

func (n *xmlNode) namespace() string {
	return n.XMLName.Space
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// text collects the node's text content recursively, collapses surrounding
// whitespace and unescapes residual HTML entities (double-escaped feeds are
// common in the wild).
func (n *xmlNode) text() string {
	var sb strings.Builder
	n.collectText(&sb)
	value := strings.TrimSpace(sb.String())
	if value == "" {
		return ""
	}
	return html.UnescapeString(value)
}

func (n *xmlNode) collectText(sb *strings.Builder) {
	sb.WriteString(n.Chardata)
	for i := range n.Children {
		n.Children[i].collectText(sb)
	}
}

// childrenNS returns the direct children matching name within a namespace.
// An empty namespace matches only unqualified children.
func (n *xmlNode) childrenNS(name, namespace string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == name && c.namespace() == namespace {
			out = append(out, c)
		}
	}
	return out
}

func (n *xmlNode) findTextNS(name, namespace string) string {
	for _, c := range n.childrenNS(name, namespace) {
		return c.text()
	}
	return ""
}

// findTextLocal matches direct children by lowercase local name, ignoring
// namespace prefixes, and returns the first non-empty text value.
func (n *xmlNode) findTextLocal(names ...string) string {
	expected := lowerSet(names)
	for i := range n.Children {
		c := &n.Children[i]
		if !expected[c.localName()] {
			continue
		}
		if value := c.text(); value != "" {
			return value
		}
	}
	return ""
}

// findAllTextLocal is findTextLocal collecting every non-empty match in
// document order.
func (n *xmlNode) findAllTextLocal(names ...string) []string {
	expected := lowerSet(names)
	var values []string
	for i := range n.Children {
		c := &n.Children[i]
		if !expected[c.localName()] {
			continue
		}
		if value := c.text(); value != "" {
			values = append(values, value)
		}
	}
	return values
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = true
	}
	return set
}
