package sonparser

import "strconv"

///////////////////////////////////////////////////////////////////////////////
// Labels
///////////////////////////////////////////////////////////////////////////////

type labelKind uint8

const (
	propertyLabel labelKind = iota
	indexLabel
)

// Label names a child failure relative to its parent: either a property
// (".name") or an array position ("[3]").
type Label struct {
	kind  labelKind
	name  string
	index int
}

// PropertyLabel labels the failure of the object member name.
func PropertyLabel(name string) Label {
	return Label{kind: propertyLabel, name: name}
}

// IndexLabel labels the failure of the element at position i.
func IndexLabel(i int) Label {
	return Label{kind: indexLabel, index: i}
}

// String returns the path segment form: ".name" or "[i]".
func (l Label) String() string {
	if l.kind == indexLabel {
		return l.Key()
	}
	return "." + l.name
}

// Key returns the form used as a JSON report key: "name" or "[i]".
func (l Label) Key() string {
	if l.kind == indexLabel {
		return "[" + strconv.Itoa(l.index) + "]"
	}
	return l.name
}

// IsIndex reports whether l labels an array position.
func (l Label) IsIndex() bool {
	return l.kind == indexLabel
}

///////////////////////////////////////////////////////////////////////////////
// ErrorNode
///////////////////////////////////////////////////////////////////////////////

// Child is one labelled sub-failure of an ErrorNode.
type Child struct {
	Label Label
	Node  *ErrorNode
}

// ErrorNode records one validation failure. Nodes built by structural
// parsers summarize their subtree and carry the detail in Children, in
// evaluation order.
//
// An ErrorNode is never modified after construction; WithChild returns a
// new node.
type ErrorNode struct {
	Message  string
	Expected string
	Actual   string
	Children []Child
}

// NewErrorNode builds a leaf failure.
func NewErrorNode(message, expected, actual string) *ErrorNode {
	return &ErrorNode{
		Message:  message,
		Expected: expected,
		Actual:   actual,
	}
}

// WithChild returns a copy of n with (label, child) appended to its children.
func (n *ErrorNode) WithChild(label Label, child *ErrorNode) *ErrorNode {
	children := make([]Child, len(n.Children), len(n.Children)+1)
	copy(children, n.Children)
	return &ErrorNode{
		Message:  n.Message,
		Expected: n.Expected,
		Actual:   n.Actual,
		Children: append(children, Child{Label: label, Node: child}),
	}
}

// IsLeaf reports whether n has no children.
func (n *ErrorNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Summary is the message shown for n in reports. A non-leaf node always
// renders the generic elem phrase for its expected type.
func (n *ErrorNode) Summary() string {
	if n.IsLeaf() {
		return n.Message
	}
	return elemFailureMessage(n.Expected)
}

// WalkFunc is called once per visited node. label is nil for the root.
// Returning false skips the children of node.
type WalkFunc func(depth int, label *Label, node *ErrorNode) bool

// Walk visits n and its descendants depth first, children in order.
func (n *ErrorNode) Walk(fn WalkFunc) {
	n.walk(0, nil, fn)
}

func (n *ErrorNode) walk(depth int, label *Label, fn WalkFunc) {
	if !fn(depth, label, n) {
		return
	}
	for i := range n.Children {
		c := &n.Children[i]
		c.Node.walk(depth+1, &c.Label, fn)
	}
}

// Report hands n to the reporter.
func (n *ErrorNode) Report(reporter Reporter) {
	reporter(n.Message, n.Expected, n.Actual, n.Children)
}

func (n *ErrorNode) String() string {
	return n.Summary()
}

// withDescription returns a copy of n with a replaced message and, when
// expected is not empty, a replaced expected name.
func (n *ErrorNode) withDescription(message, expected string) *ErrorNode {
	out := *n
	out.Message = message
	if expected != "" {
		out.Expected = expected
	}
	return &out
}
