package lexicon

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pair is a single key/value entry of a Table.
type Pair struct {
	Key   string
	Value string
}

// Table is a string mapping that remembers the order entries were written
// in the source document, so analyzers that walk a table emit suggestions
// in a stable order.
type Table struct {
	pairs []Pair
	index map[string]int
}

// NewTable builds a Table from pairs; later duplicates overwrite earlier
// values but keep the first position.
func NewTable(pairs ...Pair) Table {
	var t Table
	for _, p := range pairs {
		t.set(p.Key, p.Value)
	}
	return t
}

func (t *Table) set(key, value string) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[key]; ok {
		t.pairs[i].Value = value
		return
	}
	t.index[key] = len(t.pairs)
	t.pairs = append(t.pairs, Pair{Key: key, Value: value})
}

// Lookup returns the value stored under key.
func (t Table) Lookup(key string) (string, bool) {
	i, ok := t.index[key]
	if !ok {
		return "", false
	}
	return t.pairs[i].Value, true
}

// Pairs returns the entries in source order. The slice must not be modified.
func (t Table) Pairs() []Pair { return t.pairs }

func (t Table) Len() int { return len(t.pairs) }

func (t Table) lowerKeys() Table {
	var out Table
	for _, p := range t.pairs {
		out.set(strings.ToLower(p.Key), p.Value)
	}
	return out
}

// UnmarshalYAML decodes a mapping node keeping key order.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	*t = Table{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: table entries must be strings", k.Line)
		}
		t.set(k.Value, v.Value)
	}
	return nil
}
