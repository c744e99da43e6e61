package metaphor

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Value    string      `json:"value,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind:  n.Kind.String(),
		Value: n.Value,
	}

	if len(n.children) > 0 {
		jn.Children = make([]*jsonNode, len(n.children))
		for i, child := range n.children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
