package jsonreader_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	xjerrors "github.com/soldang/go-xj/errors"
	"github.com/soldang/go-xj/internal/jsonreader"
	"github.com/soldang/go-xj/node"
)

var strict = jsonreader.Options{MaxDepth: 1000}

func parse(t *testing.T, text string, opts jsonreader.Options) *node.Node {
	t.Helper()
	root, err := jsonreader.Parse(text, opts)
	require.NoError(t, err)
	return root
}

func TestSimpleKeyValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		value string
	}{
		{"string", `{"key": "value"}`, "key", `"value"`},
		{"integer", `{"n": 42}`, "n", `"42"`},
		{"decimal", `{"n": 3.14}`, "n", `"3.14"`},
		{"boolean", `{"flag": true}`, "flag", `"true"`},
		{"null", `{"nothing": null}`, "nothing", "null"},
		{"dotted key", `{"a.b": 1}`, "a.b", `"1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.input, strict)
			require.Len(t, root.Children(), 1)
			child := root.Children()[0]
			require.Equal(t, tt.key, child.Name())
			require.Equal(t, tt.value, child.Value())
			require.True(t, child.IsLeaf())
		})
	}
}

func TestNestedObjects(t *testing.T) {
	root := parse(t, `{"a": {"b": {"c": "deep"}}}`, strict)

	a := root.Children()[0]
	require.Equal(t, "a", a.Name())
	b := a.Children()[0]
	require.Equal(t, "b", b.Name())
	c := b.Children()[0]
	require.Equal(t, "c", c.Name())
	require.Equal(t, `"deep"`, c.Value())
	require.Equal(t, "a, b, c", c.Path())
}

func TestMultiplePairs(t *testing.T) {
	root := parse(t, `{"a": 1, "b": "two", "c": null}`, strict)
	require.Len(t, root.Children(), 3)
	require.Equal(t, "a", root.Children()[0].Name())
	require.Equal(t, "b", root.Children()[1].Name())
	require.Equal(t, "c", root.Children()[2].Name())
	require.False(t, root.IsArray())
}

func TestArrays(t *testing.T) {
	t.Run("top-level array", func(t *testing.T) {
		root := parse(t, `["x", "y", "z"]`, strict)
		require.True(t, root.IsArray())
		require.Len(t, root.Children(), 3)
		for i, want := range []string{`"x"`, `"y"`, `"z"`} {
			require.Equal(t, "element", root.Children()[i].Name())
			require.Equal(t, want, root.Children()[i].Value())
		}
	})

	t.Run("nested array value", func(t *testing.T) {
		root := parse(t, `{"items": [1, 2]}`, strict)
		items := root.Children()[0]
		require.True(t, items.IsArray())
		require.Len(t, items.Children(), 2)
	})

	t.Run("array of objects", func(t *testing.T) {
		root := parse(t, `{"rows": [{"v": 1}, {"v": 2}]}`, strict)
		rows := root.Children()[0]
		require.True(t, rows.IsArray())
		require.Equal(t, `"1"`, rows.Children()[0].Children()[0].Value())
	})

	t.Run("single element degrades to object", func(t *testing.T) {
		root := parse(t, `{"items": [1]}`, strict)
		items := root.Children()[0]
		require.False(t, items.IsArray(), "one child never makes an array")
		require.Equal(t, "element", items.Children()[0].Name())
	})

	t.Run("empty array keeps the flag", func(t *testing.T) {
		root := parse(t, `{"items": []}`, strict)
		items := root.Children()[0]
		require.True(t, items.IsArray())
		require.Empty(t, items.Children())
	})
}

func TestAttributeValueDisambiguation(t *testing.T) {
	t.Run("attributes and value", func(t *testing.T) {
		root := parse(t, `{"item": {"@id": "1", "#item": "text"}}`, strict)
		item := root.Children()[0]
		require.Equal(t, "item", item.Name())
		require.Equal(t, []node.Attr{{Key: "id", Value: "1"}}, item.Attrs())
		require.Equal(t, `"text"`, item.Value())
		require.Empty(t, item.Children(), `"@id" must not become a child`)
	})

	t.Run("attributes and nested content", func(t *testing.T) {
		root := parse(t, `{"person": {"@age": "30", "#person": {"name": "Ann"}}}`, strict)
		person := root.Children()[0]
		require.Equal(t, []node.Attr{{Key: "age", Value: "30"}}, person.Attrs())
		require.Len(t, person.Children(), 1)
		require.Equal(t, "name", person.Children()[0].Name())
	})

	t.Run("attribute with unquoted scalar", func(t *testing.T) {
		root := parse(t, `{"item": {"@id": 7, "#item": "x"}}`, strict)
		require.Equal(t, []node.Attr{{Key: "id", Value: "7"}}, root.Children()[0].Attrs())
	})

	t.Run("null attribute collapses to empty", func(t *testing.T) {
		root := parse(t, `{"item": {"@id": null, "#item": "x"}}`, strict)
		require.Equal(t, []node.Attr{{Key: "id", Value: ""}}, root.Children()[0].Attrs())
	})

	t.Run("empty brackets fold to empty value", func(t *testing.T) {
		root := parse(t, `{"item": {"@id": {}, "#item": "x"}}`, strict)
		require.Equal(t, []node.Attr{{Key: "id", Value: ""}}, root.Children()[0].Attrs())
	})

	t.Run("no value key means plain children", func(t *testing.T) {
		// All keys are @-prefixed, but without a #-key the set is not
		// attribute form; prefixes are stripped.
		root := parse(t, `{"item": {"@a": "1", "@b": "2"}}`, strict)
		item := root.Children()[0]
		require.Empty(t, item.Attrs())
		require.Len(t, item.Children(), 2)
		require.Equal(t, "a", item.Children()[0].Name())
	})

	t.Run("value key naming another element", func(t *testing.T) {
		// #other does not name the enclosing item, so the set falls
		// back to children with prefixes stripped.
		root := parse(t, `{"item": {"@id": "1", "#other": "x"}}`, strict)
		item := root.Children()[0]
		require.Empty(t, item.Attrs())
		require.Len(t, item.Children(), 2)
		require.Equal(t, "id", item.Children()[0].Name())
		require.Equal(t, "other", item.Children()[1].Name())
	})

	t.Run("attribute with structured value breaks attribute form", func(t *testing.T) {
		root := parse(t, `{"item": {"@id": {"x": 1}, "#item": "v"}}`, strict)
		item := root.Children()[0]
		require.Empty(t, item.Attrs())
		require.Len(t, item.Children(), 2)
	})

	t.Run("mixed prefixed and plain keys become children", func(t *testing.T) {
		root := parse(t, `{"item": {"@id": "1", "name": "x"}}`, strict)
		item := root.Children()[0]
		require.Empty(t, item.Attrs())
		require.Equal(t, "id", item.Children()[0].Name())
		require.Equal(t, "name", item.Children()[1].Name())
	})

	t.Run("prefixed key shadowed by unprefixed sibling is dropped", func(t *testing.T) {
		root := parse(t, `{"item": {"@a": "1", "a": "2"}}`, strict)
		item := root.Children()[0]
		require.Len(t, item.Children(), 1)
		require.Equal(t, "a", item.Children()[0].Name())
		require.Equal(t, `"2"`, item.Children()[0].Value())
	})

	t.Run("bare prefix keys are dropped", func(t *testing.T) {
		root := parse(t, `{"item": {"@": "1", "b": "2"}}`, strict)
		item := root.Children()[0]
		require.Len(t, item.Children(), 1)
		require.Equal(t, "b", item.Children()[0].Name())
	})
}

func TestScalarDocument(t *testing.T) {
	root := parse(t, `{"just a value"}`, strict)
	require.True(t, root.IsLeaf())
	require.Equal(t, `"just a value"`, root.Value())
}

func TestEmptyObjectDocument(t *testing.T) {
	root := parse(t, `{}`, strict)
	require.True(t, root.IsLeaf())
	require.Equal(t, `""`, root.Value())
}

func TestStrictErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unbalanced brackets", `{"a": [1, 2}`},
		{"trailing garbage", `{"a": 1} extra`},
		{"interleaved garbage", `{"a": 1 junk "b": 2}`},
		{"no recognizable pairs", `what is this`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jsonreader.Parse(tt.input, strict)
			var syn *xjerrors.SyntaxError
			require.ErrorAs(t, err, &syn)
			require.Equal(t, xjerrors.FormatJSON, syn.Format)
		})
	}
}

func TestLenientSkipsGarbage(t *testing.T) {
	root := parse(t, `{"a": 1 junk "b": 2}`, jsonreader.Options{Lenient: true, MaxDepth: 1000})
	require.Len(t, root.Children(), 2)
	require.Equal(t, "a", root.Children()[0].Name())
	require.Equal(t, "b", root.Children()[1].Name())
}

func TestMaxDepth(t *testing.T) {
	_, err := jsonreader.Parse(`{"a": {"b": {"c": {"d": 1}}}}`, jsonreader.Options{MaxDepth: 2})
	var syn *xjerrors.SyntaxError
	require.ErrorAs(t, err, &syn)
	require.Contains(t, syn.Msg, "depth")

	_, err = jsonreader.Parse(`{"a": {"b": 1}}`, jsonreader.Options{MaxDepth: 2})
	require.NoError(t, err)
}
