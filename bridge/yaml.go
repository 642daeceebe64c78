package bridge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/mazrean/jsonagent/jsonv"
	"gopkg.in/yaml.v3"
)

// ToYAMLNode builds a YAML node tree for v, keeping member order.
func ToYAMLNode(v jsonv.Value) *yaml.Node {
	switch v.Kind() {
	case jsonv.KindObject:
		o, _ := v.AsObject()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range o.Pairs() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name()},
				ToYAMLNode(p.Value),
			)
		}
		return node
	case jsonv.KindArray:
		a, _ := v.AsArray()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range a.All() {
			node.Content = append(node.Content, ToYAMLNode(e))
		}
		return node
	case jsonv.KindInteger:
		i, _ := v.AsInteger()
		return scalarNode("!!int", strconv.FormatInt(i, 10))
	case jsonv.KindBoolean:
		b, _ := v.AsBoolean()
		return scalarNode("!!bool", strconv.FormatBool(b))
	case jsonv.KindNumber:
		f, _ := v.AsNumber()
		switch {
		case math.IsNaN(f):
			return scalarNode("!!float", ".nan")
		case math.IsInf(f, 1):
			return scalarNode("!!float", ".inf")
		case math.IsInf(f, -1):
			return scalarNode("!!float", "-.inf")
		}
		return scalarNode("!!float", v.String())
	case jsonv.KindString:
		s, _ := v.AsString()
		return scalarNode("!!str", s)
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// FromYAMLNode converts a YAML node tree to a Value, keeping mapping order.
// Aliases are expanded.
func FromYAMLNode(node *yaml.Node) (jsonv.Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return jsonv.Null(), nil
		}
		return FromYAMLNode(node.Content[0])
	case yaml.MappingNode:
		o := jsonv.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return jsonv.Value{}, fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
			}
			v, err := FromYAMLNode(node.Content[i+1])
			if err != nil {
				return jsonv.Value{}, err
			}
			o.Add(key.Value, v)
		}
		return jsonv.ObjectValue(o), nil
	case yaml.SequenceNode:
		a := jsonv.NewArray()
		for _, child := range node.Content {
			v, err := FromYAMLNode(child)
			if err != nil {
				return jsonv.Value{}, err
			}
			a.Push(v)
		}
		return jsonv.ArrayValue(a), nil
	case yaml.AliasNode:
		if node.Alias == nil {
			return jsonv.Null(), nil
		}
		return FromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	default:
		return jsonv.Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

func fromYAMLScalar(node *yaml.Node) (jsonv.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return jsonv.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return jsonv.Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return jsonv.Boolean(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return jsonv.Integer(i), nil
		}
		fallthrough
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return jsonv.Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return jsonv.Number(f), nil
	default:
		// timestamps and other tags keep their source text
		return jsonv.String(node.Value), nil
	}
}

// MarshalYAML renders v as a YAML document with two-space indentation.
func MarshalYAML(v jsonv.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeYAML writes v to w as a YAML document.
func EncodeYAML(w io.Writer, v jsonv.Value) (err error) {
	enc := yaml.NewEncoder(w)
	defer func() {
		if closeErr := enc.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close yaml encoder: %w", closeErr))
		}
	}()
	enc.SetIndent(2)

	if err := enc.Encode(ToYAMLNode(v)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

// UnmarshalYAML decodes the first YAML document in data.
func UnmarshalYAML(data []byte) (jsonv.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return jsonv.Value{}, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if root.Kind == 0 {
		return jsonv.Null(), nil
	}
	return FromYAMLNode(&root)
}
