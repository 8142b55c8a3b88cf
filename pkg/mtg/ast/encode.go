package ast

import "encoding/json"

// nodeView is the serialized form of a Node used by the YAML and JSON encoders.
type nodeView struct {
	Kind     Kind        `yaml:"kind" json:"kind"`
	Value    *int        `yaml:"value,omitempty" json:"value,omitempty"`
	Text     string      `yaml:"text,omitempty" json:"text,omitempty"`
	Span     string      `yaml:"span,omitempty" json:"span,omitempty"`
	Children []*nodeView `yaml:"children,omitempty" json:"children,omitempty"`
}

func (n *Node) view() *nodeView {
	v := &nodeView{Kind: n.kind, Text: n.text}
	if n.hasValue {
		value := n.value
		v.Value = &value
	}
	if n.span.Start.IsValid() {
		v.Span = n.span.String()
	}
	for _, c := range n.children {
		v.Children = append(v.Children, c.view())
	}
	return v
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return n.view(), nil
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.view())
}
