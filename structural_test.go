package sonparser

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counting wraps p and counts its invocations.
func counting[T any](p Parser[any, T], calls *int) Parser[any, T] {
	return NewParser(func(in Input[any]) Result[T] {
		*calls++
		return p.Run(in)
	})
}

func childLabels(n *ErrorNode) []string {
	labels := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		labels = append(labels, c.Label.String())
	}
	return labels
}

func TestArray(t *testing.T) {
	t.Run("empty array always succeeds", func(t *testing.T) {
		v, err := Array(Fail[any, bool]("never", "never")).Parse([]any{})
		require.NoError(t, err)
		assert.Equal(t, []bool{}, v)
	})

	t.Run("converts every element in order", func(t *testing.T) {
		v, err := Array(Integer).Parse([]any{3.0, 1.0, 2.0})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1, 2}, v)
	})

	t.Run("not an array", func(t *testing.T) {
		node := failureNode(t, Array(Boolean), "x")
		assert.True(t, node.IsLeaf())
		assert.Equal(t, `"x" is not 'array'`, node.Message)
		assert.Equal(t, ExpectedArray, node.Expected)
	})

	t.Run("objects are not arrays", func(t *testing.T) {
		_, err := Array(Boolean).Parse(map[string]any{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("reporting collects every failing index", func(t *testing.T) {
		node := failureNode(t, Array(Boolean), []any{true, 1.0, "x"})
		assert.Equal(t, "failed to parse elem of 'array'", node.Message)
		assert.Equal(t, []string{"[1]", "[2]"}, childLabels(node))
		assert.Equal(t, "1 is not 'boolean'", node.Children[0].Node.Message)
		assert.Equal(t, "1", node.Children[0].Node.Actual)
		assert.Equal(t, `"x" is not 'boolean'`, node.Children[1].Node.Message)
	})

	t.Run("without reporting stops at the first failure", func(t *testing.T) {
		calls := 0
		_, err := Array(counting(Boolean, &calls)).Parse([]any{true, 1.0, "x", false})
		require.Error(t, err)
		assert.Equal(t, 2, calls)

		pe := err.(*ParseError)
		assert.Equal(t, "failed to parse elem of 'array'", pe.Message)
		assert.True(t, pe.Node.IsLeaf())
	})

	t.Run("reporting evaluates every element", func(t *testing.T) {
		calls := 0
		Array(counting(Boolean, &calls)).ParseWithResult([]any{true, 1.0, "x", false})
		assert.Equal(t, 4, calls)
	})

	t.Run("without reporting a failure on the last element is a leaf", func(t *testing.T) {
		for _, input := range [][]any{{1.0}, {true, 1.0}} {
			_, err := Array(Boolean).Parse(input)
			require.Error(t, err)
			pe := err.(*ParseError)
			assert.Equal(t, "failed to parse elem of 'array'", pe.Message)
			assert.True(t, pe.Node.IsLeaf(), Stringify(input))
		}
	})

	t.Run("successful parse does not allocate per element", func(t *testing.T) {
		small := make([]any, 10)
		large := make([]any, 2000)
		for _, items := range [][]any{small, large} {
			for i := range items {
				items[i] = i%2 == 0
			}
		}
		p := Array(Boolean)

		allocs := func(items []any) float64 {
			return testing.AllocsPerRun(20, func() {
				if _, err := p.Parse(items); err != nil {
					t.Fatal(err)
				}
			})
		}
		assert.LessOrEqual(t, allocs(large), 10.0)
		assert.Equal(t, allocs(small), allocs(large))
	})
}

func TestHasProperties(t *testing.T) {
	ab := HasProperties(
		Prop("a", Boolean),
		Prop("b", Number),
	)

	t.Run("reports only the failing property", func(t *testing.T) {
		node := failureNode(t, ab, map[string]any{"a": true, "b": "x"})
		assert.Equal(t, "failed to parse elem of 'object'", node.Message)
		assert.Equal(t, ExpectedObject, node.Expected)
		require.Len(t, node.Children, 1)
		assert.Equal(t, ".b", node.Children[0].Label.String())
		assert.Equal(t, NewErrorNode(`"x" is not 'number'`, "number", `"x"`), node.Children[0].Node)
	})

	t.Run("list report of the failing property", func(t *testing.T) {
		var lines []string
		ab.ParseWithResult(map[string]any{"a": true, "b": "x"}).Report(ListReporter(func(line string) {
			lines = append(lines, line)
		}, ListReporterOpts{}))
		assert.Equal(t, []string{`this.b : "x" is not 'number'`}, lines)
	})

	t.Run("output is a projection", func(t *testing.T) {
		v, err := ab.Parse(map[string]any{"a": true, "b": 2.0, "c": "extra"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": true, "b": 2.0}, v)
	})

	t.Run("accepts ordered maps", func(t *testing.T) {
		v, err := ab.Parse(NewOrderedMap().Set("b", 1.0).Set("a", false))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": false, "b": 1.0}, v)
	})

	t.Run("missing properties are undefined", func(t *testing.T) {
		node := failureNode(t, HasProperties(Prop("scripts", Object)), map[string]any{})
		require.Len(t, node.Children, 1)
		assert.Equal(t, "undefined is not 'object'", node.Children[0].Node.Message)
		assert.Equal(t, "undefined", node.Children[0].Node.Actual)
	})

	t.Run("missing optional property takes the default", func(t *testing.T) {
		v, err := HasProperties(Prop("private", Boolean.Option(false))).Parse(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"private": false}, v)
	})

	t.Run("not an object", func(t *testing.T) {
		for _, input := range []any{"not object", []any{}, nil} {
			node := failureNode(t, ab, input)
			assert.True(t, node.IsLeaf())
			assert.Equal(t, Stringify(input)+" is not 'object'", node.Message)
		}
	})

	t.Run("properties in declaration order", func(t *testing.T) {
		p := HasProperties(Prop("z", Boolean), Prop("a", Boolean), Prop("m", Boolean))
		node := failureNode(t, p, map[string]any{"a": 1.0, "m": 1.0, "z": 1.0})
		assert.Equal(t, []string{".z", ".a", ".m"}, childLabels(node))
	})

	t.Run("without reporting a failing last property is a leaf", func(t *testing.T) {
		_, err := HasProperties(Prop("a", Boolean), Prop("b", Boolean)).Parse(map[string]any{"a": true, "b": 1.0})
		require.Error(t, err)
		pe := err.(*ParseError)
		assert.Equal(t, "failed to parse elem of 'object'", pe.Message)
		assert.True(t, pe.Node.IsLeaf())
	})

	t.Run("successful nested parse does not stringify the input", func(t *testing.T) {
		p := HasProperties(Prop("outer", HasProperties(Prop("inner", Array(String)))))
		short := map[string]any{"outer": map[string]any{"inner": []any{"s"}}}
		long := map[string]any{"outer": map[string]any{"inner": []any{strings.Repeat("s", 1<<16)}}}

		bytesFor := func(v any) uint64 {
			var before, after runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&before)
			for i := 0; i < 10; i++ {
				if _, err := p.Parse(v); err != nil {
					t.Fatal(err)
				}
			}
			runtime.ReadMemStats(&after)
			return after.TotalAlloc - before.TotalAlloc
		}
		// one encoding of the long string alone would exceed 10 * 64 KiB
		assert.Less(t, bytesFor(long), bytesFor(short)+(1<<16))
	})

	t.Run("without reporting stops at the first failure", func(t *testing.T) {
		calls := 0
		p := HasProperties(Prop("a", counting(Boolean, &calls)), Prop("b", counting(Boolean, &calls)))
		_, err := p.Parse(map[string]any{"a": 1.0, "b": 1.0})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, err.(*ParseError).Node.IsLeaf())
	})

	t.Run("nested failures compose", func(t *testing.T) {
		p := HasProperties(Prop("outer", HasProperties(Prop("inner", Array(Boolean)))))
		node := failureNode(t, p, map[string]any{"outer": map[string]any{"inner": []any{true, 0.0}}})

		require.Len(t, node.Children, 1)
		outer := node.Children[0].Node
		require.Len(t, outer.Children, 1)
		inner := outer.Children[0].Node
		assert.Equal(t, []string{"[1]"}, childLabels(inner))
	})
}

func TestHash(t *testing.T) {
	t.Run("converts every value", func(t *testing.T) {
		v, err := Hash(Integer).Parse(map[string]any{"a": 1.0, "b": 2.0})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"a": 1, "b": 2}, v)
	})

	t.Run("empty object", func(t *testing.T) {
		v, err := Hash(Boolean).Parse(map[string]any{})
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("failures are labelled by key in document order", func(t *testing.T) {
		input := NewOrderedMap().Set("b", 1.0).Set("c", "x").Set("a", "y")
		node := failureNode(t, Hash(Number), input)
		assert.Equal(t, "failed to parse elem of 'hash'", node.Message)
		assert.Equal(t, ExpectedHash, node.Expected)
		assert.Equal(t, []string{".c", ".a"}, childLabels(node))
		assert.Equal(t, "c", node.Children[0].Label.Key())
	})

	t.Run("key labels in list and JSON reports", func(t *testing.T) {
		input := NewOrderedMap().Set("ok", 1.0).Set("bad", "x")
		list := &lineRecorder{}
		doc := &lineRecorder{}
		Hash(Number).ParseWithResult(input).
			Report(ListReporter(list.sink, ListReporterOpts{})).
			Report(JSONReporter(doc.sink, JSONReporterOpts{OneLine: true}))
		assert.Equal(t, []string{`this.bad : "x" is not 'number'`}, list.lines)
		assert.Equal(t, []string{`{"bad":"\"x\" is not 'number'"}`}, doc.lines)
	})

	t.Run("not an object", func(t *testing.T) {
		node := failureNode(t, Hash(Number), []any{1.0})
		assert.Equal(t, "[1] is not 'object'", node.Message)
	})
}

func TestTuples(t *testing.T) {
	t.Run("Tuple1", func(t *testing.T) {
		v, err := Tuple1(String).Parse([]any{"a"})
		require.NoError(t, err)
		assert.Equal(t, Tup1[string]{V1: "a"}, v)
	})

	t.Run("Tuple2", func(t *testing.T) {
		v, err := Tuple2(Boolean, String).Parse([]any{true, "s"})
		require.NoError(t, err)
		assert.Equal(t, Tup2[bool, string]{V1: true, V2: "s"}, v)
	})

	t.Run("Tuple3", func(t *testing.T) {
		v, err := Tuple3(Boolean, String, Number).Parse([]any{true, "s", 1.0})
		require.NoError(t, err)
		assert.Equal(t, Tup3[bool, string, float64]{V1: true, V2: "s", V3: 1}, v)
	})

	t.Run("Tuple4", func(t *testing.T) {
		v, err := Tuple4(Boolean, String, Number, Integer).Parse([]any{true, "s", 1.5, 2.0})
		require.NoError(t, err)
		assert.Equal(t, Tup4[bool, string, float64, int64]{V1: true, V2: "s", V3: 1.5, V4: 2}, v)
	})

	t.Run("Tuple5", func(t *testing.T) {
		p := Tuple5(Boolean, String, Number, Integer, Nothing("none"))
		v, err := p.Parse([]any{true, "s", 1.5, 2.0, nil})
		require.NoError(t, err)
		assert.Equal(t, Tup5[bool, string, float64, int64, string]{V1: true, V2: "s", V3: 1.5, V4: 2, V5: "none"}, v)
	})

	t.Run("arity mismatch is a leaf", func(t *testing.T) {
		node := failureNode(t, Tuple2(Boolean, String), []any{true})
		assert.True(t, node.IsLeaf())
		assert.Equal(t, "tuple2", node.Expected)
		assert.Equal(t, "[true] is not 'tuple2' (length 1, want 2)", node.Message)
	})

	t.Run("not an array", func(t *testing.T) {
		node := failureNode(t, Tuple2(Boolean, String), "x")
		assert.Equal(t, `"x" is not 'tuple2'`, node.Message)
	})

	t.Run("element failures are labelled by index", func(t *testing.T) {
		node := failureNode(t, Tuple3(Boolean, String, Number), []any{true, 1.0, "x"})
		assert.Equal(t, "failed to parse elem of 'tuple3'", node.Message)
		assert.Equal(t, []string{"[1]", "[2]"}, childLabels(node))
	})

	t.Run("nil element values", func(t *testing.T) {
		v, err := Tuple2(Nothing[any](nil), Boolean).Parse([]any{nil, true})
		require.NoError(t, err)
		assert.Nil(t, v.V1)
		assert.True(t, v.V2)
	})
}

func TestReportingIsMonotonic(t *testing.T) {
	tests := []struct {
		name  string
		parse func(report bool) *ErrorNode
	}{
		{"array", func(report bool) *ErrorNode {
			return runFlags(Array(Boolean), []any{1.0, true, "x"}, report)
		}},
		{"object", func(report bool) *ErrorNode {
			return runFlags(HasProperties(Prop("a", Boolean), Prop("b", String)), map[string]any{"a": 1.0, "b": 2.0}, report)
		}},
		{"hash", func(report bool) *ErrorNode {
			return runFlags(Hash(Boolean), map[string]any{"a": 1.0, "b": true, "c": "x"}, report)
		}},
		{"tuple", func(report bool) *ErrorNode {
			return runFlags(Tuple2(Boolean, String), []any{1.0, 2.0}, report)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			short := tt.parse(false)
			full := tt.parse(true)
			require.NotNil(t, short)
			require.NotNil(t, full)
			assert.GreaterOrEqual(t, len(full.Children), len(short.Children))
			assert.Len(t, full.Children, 2)
		})
	}
}

// runFlags runs p with the given reporting flag and returns the failure.
func runFlags[T any](p Parser[any, T], v any, report bool) *ErrorNode {
	return p.Run(Input[any]{Value: v, Flags: Flags{IsReport: report}}).ValueFailure(nil)
}
