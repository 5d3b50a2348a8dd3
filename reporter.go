package sonparser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
)

///////////////////////////////////////////////////////////////////////////////
// Reporter
///////////////////////////////////////////////////////////////////////////////

// Reporter renders the root of a failure. It receives the root unpacked so
// that plain functions can serve as reporters.
type Reporter func(message, expected, actual string, children []Child)

// Sink receives one rendered line (or, for the JSON reporter, one rendered
// document).
type Sink func(line string)

// StdoutSink prints each line to standard output.
func StdoutSink(line string) {
	fmt.Println(line)
}

// rootNode packs the reporter arguments back into a node.
func rootNode(message, expected, actual string, children []Child) *ErrorNode {
	return &ErrorNode{
		Message:  message,
		Expected: expected,
		Actual:   actual,
		Children: children,
	}
}

// descends reports whether the children of a node at level are rendered.
// A depth of zero or less is unlimited.
func descends(level, depth int) bool {
	return depth <= 0 || level < depth
}

///////////////////////////////////////////////////////////////////////////////
// Nested reporter
///////////////////////////////////////////////////////////////////////////////

type NestReporterOpts struct {
	// Depth is the number of levels below the root to render. Zero renders
	// the whole tree.
	Depth int
}

// NestReporter renders a failure as a connector-drawn tree, one line per
// node:
//
//	this : failed to parse elem of 'object'
//	├── .private : "not boolean!" is not 'boolean'
//	├─┬ .keywords : failed to parse elem of 'array'
//	│ └── [1] : true is not 'string'
//	└─┬ .repository : failed to parse elem of 'object'
//	  └── .type : 0 is not 'string'
func NestReporter(sink Sink, opts NestReporterOpts) Reporter {
	if sink == nil {
		sink = StdoutSink
	}
	return func(message, expected, actual string, children []Child) {
		root := rootNode(message, expected, actual, children)
		sink(RootLabel + labelSeparator + root.Summary())
		if descends(0, opts.Depth) {
			nestChildren(sink, root, "", 1, opts.Depth)
		}
	}
}

func nestChildren(sink Sink, n *ErrorNode, prefix string, level, depth int) {
	last := len(n.Children) - 1
	for i, c := range n.Children {
		open := !c.Node.IsLeaf() && descends(level, depth)

		var connector, indent string
		switch {
		case i == last && open:
			connector, indent = nestLastNested, nestIndentLast
		case i == last:
			connector = nestLast
		case open:
			connector, indent = nestBranchNested, nestIndentBranch
		default:
			connector = nestBranch
		}

		sink(prefix + connector + c.Label.String() + labelSeparator + c.Node.Summary())
		if open {
			nestChildren(sink, c.Node, prefix+indent, level+1, depth)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// List reporter
///////////////////////////////////////////////////////////////////////////////

type ListReporterOpts struct {
	// Depth is the number of levels below the root to render. Zero renders
	// the whole tree.
	Depth int
}

// ListReporter renders one line per leaf failure, addressed by its path from
// the root:
//
//	this.pP1.pA[0] : 0 is not 'boolean'
//
// A branch cut off by Depth is rendered as a single line holding its
// summary.
func ListReporter(sink Sink, opts ListReporterOpts) Reporter {
	if sink == nil {
		sink = StdoutSink
	}
	return func(message, expected, actual string, children []Child) {
		paths := []string{RootLabel}
		rootNode(message, expected, actual, children).Walk(func(depth int, label *Label, node *ErrorNode) bool {
			path := paths[0]
			if label != nil {
				path = paths[depth-1] + label.String()
				paths = append(paths[:depth], path)
			}
			if node.IsLeaf() || !descends(depth, opts.Depth) {
				sink(path + labelSeparator + node.Summary())
				return false
			}
			return true
		})
	}
}

///////////////////////////////////////////////////////////////////////////////
// JSON reporter
///////////////////////////////////////////////////////////////////////////////

type JSONReporterOpts struct {
	// OneLine renders compact JSON. Otherwise the document is indented.
	OneLine bool
	// Indent is the number of spaces per level. Zero selects DefaultIndent.
	Indent int
	// Depth is the number of levels below the root to render. Zero renders
	// the whole tree.
	Depth int
}

// JSONReporter renders a failure as a JSON document handed to sink in one
// call. Each child becomes a key (".name" as "name", "[i]" as is) whose value
// is its message, or an object of its own children. A failure without
// children renders as a JSON string.
func JSONReporter(sink Sink, opts JSONReporterOpts) Reporter {
	if sink == nil {
		sink = StdoutSink
	}
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}
	return func(message, expected, actual string, children []Child) {
		var buf bytes.Buffer
		writeJSONReport(&buf, rootNode(message, expected, actual, children), 0, opts.Depth)
		if opts.OneLine {
			sink(buf.String())
			return
		}
		out := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{
			Width:    80,
			Indent:   strings.Repeat(" ", indent),
			SortKeys: false,
		})
		sink(string(bytes.TrimRight(out, "\n")))
	}
}

// writeJSONReport writes n as compact JSON, keeping child order.
func writeJSONReport(buf *bytes.Buffer, n *ErrorNode, level, depth int) {
	if n.IsLeaf() || !descends(level, depth) {
		buf.WriteString(quoteString(n.Summary()))
		return
	}
	buf.WriteByte('{')
	for i, c := range n.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quoteString(c.Label.Key()))
		buf.WriteByte(':')
		writeJSONReport(buf, c.Node, level+1, depth)
	}
	buf.WriteByte('}')
}

///////////////////////////////////////////////////////////////////////////////
// Custom reporter
///////////////////////////////////////////////////////////////////////////////

// ReportInfo is the unpacked content of one visited node.
type ReportInfo struct {
	Message  string
	Expected string
	Actual   string
}

// ReportData is the traversal metadata of one visited node.
type ReportData struct {
	// Depth is 0 for the root.
	Depth  int
	IsLeaf bool
	// PropertyName is the full path of the node, such as "this.pP1.pA[0]".
	PropertyName string
}

// ReportEvent is sent on CustomReporterOpts.Events for every visited node.
type ReportEvent struct {
	Info ReportInfo
	Data ReportData
}

// CustomReportFunc is called once for every visited node.
type CustomReportFunc func(info ReportInfo, data ReportData)

type CustomReporterOpts struct {
	// Events, when set, receives one event per visited node after fn has
	// been called. Sends block, so the channel must be buffered or drained
	// concurrently.
	Events chan<- ReportEvent
}

// CustomReporter visits every node of a failure depth first, root first,
// and hands it to fn.
func CustomReporter(fn CustomReportFunc, opts CustomReporterOpts) Reporter {
	return func(message, expected, actual string, children []Child) {
		paths := []string{RootLabel}
		rootNode(message, expected, actual, children).Walk(func(depth int, label *Label, node *ErrorNode) bool {
			path := paths[0]
			if label != nil {
				path = paths[depth-1] + label.String()
				paths = append(paths[:depth], path)
			}
			info := ReportInfo{Message: node.Message, Expected: node.Expected, Actual: node.Actual}
			data := ReportData{Depth: depth, IsLeaf: node.IsLeaf(), PropertyName: path}
			if fn != nil {
				fn(info, data)
			}
			if opts.Events != nil {
				opts.Events <- ReportEvent{Info: info, Data: data}
			}
			return true
		})
	}
}
