/*
Package xj converts documents between a JSON-like and an XML-like textual
format through a shared intermediate tree.

The package is not a JSON or XML standard implementation. It targets a
deliberately restricted grammar (simple scalar values, nested objects,
homogeneous arrays, attribute-prefixed keys) sufficient to round-trip
documents produced by its own counterpart codec. XML attributes are
represented in JSON with the @key convention, and a node carrying both
attributes and content uses a #name key for the content:

	<person age="30">        "person": {
		<name>Ann</name>  ⇄      "@age": "30",
	</person>                    "#person": {
	                                 "name": "Ann"
	                             }
	                         }

The simplest entry point sniffs the input format from its first character
and produces the opposite format:

	out, err := xj.Convert(data)

Parsing and rendering are also available separately, built around the
node.Node tree:

	tree, err := xj.ParseXML(data)
	if err != nil {
		// handle error
	}
	out := xj.ToJSON(tree)

By default the readers reject input that does not match the restricted
grammar with a *SyntaxError identifying the offending offset and fragment.
The Lenient option restores the historical best-effort behavior of
silently skipping unmatched regions. MaxDepth bounds recursion into nested
documents.

Conversions are deterministic pure functions over in-memory trees; no
state is shared between calls, so concurrent conversions of independent
documents need no coordination.
*/
package xj
