// Package sonparser validates and converts loosely-typed structured data,
// such as decoded JSON or YAML configuration, into typed Go values using
// composable parsers.
//
// A parser either produces a value or an error tree that records every
// failure and where in the input it happened. Parsers are built from
// primitives and combinators:
//
//	var packageParser = sonparser.HasProperties(
//		sonparser.Prop("private", sonparser.Boolean.Option(false)),
//		sonparser.Prop("name", sonparser.String),
//		sonparser.Prop("keywords", sonparser.Array(sonparser.String).Option(nil)),
//	)
//
// The primitives are Boolean, Number, String, Object and Nothing, with the
// conversions Integer, UUID and Time on top of them. The structural parsers
// are Array, HasProperties, Hash and Tuple1 through Tuple5.
//
// Combinators that keep the output type are methods (Or, Desc,
// DescFromExpected, Default, Option, Then, Catch). Combinators that change
// it are functions (And, Map, Seq2, Bind), since Go methods cannot declare
// type parameters.
//
// # Reporting mode
//
// Parse stops at the first failure and returns it as a *ParseError.
// ParseWithResult runs in reporting mode: structural parsers keep going
// after a failure so the whole error tree is built. The tree can then be
// rendered with a Reporter:
//   - NestReporter: a connector-drawn tree
//   - ListReporter: one "this.path : message" line per failure
//   - JSONReporter: a JSON document keyed by property and index
//   - CustomReporter: a callback per node, optionally mirrored to a channel
//
// # Files
//
// ParseFile, ParseFileWithResult and ParseFileAsync load a JSON or YAML
// document through the default Loader and parse it. Decoders are selected by
// file extension; more can be added with RegisterDecoder or on a Loader of
// your own built with NewLoader.
package sonparser
