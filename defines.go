package sonparser

import "fmt"

// constants for failure messages
const (
	DefaultFailureMessage = "failed to parse"
	DefaultExpected       = "unknown"
	EmptyFailureMessage   = "empty"
	elemFailureFormat     = "failed to parse elem of '%s'"
)

// constants for structural expected names
const (
	ExpectedArray    = "array"
	ExpectedObject   = "object"
	ExpectedHash     = "hash"
	ExpectedSequence = "seq2"
	ExpectedDocument = "document"
	expectedTupleFmt = "tuple%d"
)

// constants for conversion expected names
const (
	ExpectedInteger = "integer"
	ExpectedUUID    = "uuid"
	ExpectedTime    = "time"
)

// constants for report rendering
const (
	RootLabel        = "this"
	labelSeparator   = " : "
	DefaultIndent    = 2
	nestBranch       = "├── "
	nestBranchNested = "├─┬ "
	nestLast         = "└── "
	nestLastNested   = "└─┬ "
	nestIndentBranch = "│ "
	nestIndentLast   = "  "
)

// Decoder name constants for built in decoders.
const (
	JSONDecoderName = "json-document-decoder"
	YAMLDecoderName = "yaml-document-decoder"
)

// elemFailureMessage is the generic message of a node whose detail lives in
// its children.
func elemFailureMessage(expected string) string {
	return fmt.Sprintf(elemFailureFormat, expected)
}

func tupleExpected(n int) string {
	return fmt.Sprintf(expectedTupleFmt, n)
}
