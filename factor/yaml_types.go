package factor

import (
	"fmt"
	"math/big"

	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a Table.
type File struct {
	Version string       `yaml:"version,omitempty"`
	Units   []UnitSpec   `yaml:"units,omitempty"`
	Factors []FactorSpec `yaml:"factors"`
}

// UnitSpec declares a unit, optionally with a label and ruler ticks.
type UnitSpec struct {
	ID    string  `yaml:"id"`
	Label string  `yaml:"label,omitempty"`
	Ticks []*Ratio `yaml:"ticks,omitempty"`
}

// FactorSpec is one authored edge. Exactly one of Factor and Decimal is set.
type FactorSpec struct {
	From    string   `yaml:"from"`
	To      string   `yaml:"to"`
	Factor  *Ratio   `yaml:"factor,omitempty"`
	Decimal *float64 `yaml:"decimal,omitempty"`
}

// Ratio is an exact rational written as a YAML scalar: 72, 25.4 or "1/96".
type Ratio struct {
	big.Rat
}

// UnmarshalYAML implements custom YAML unmarshaling for Ratio.
// The scalar text is parsed exactly, never through float64.
func (r *Ratio) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a rational scalar, got %v", node.Line, node.Kind)
	}

	v, err := ParseRat(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	r.Set(v)

	return nil
}

// MarshalYAML implements custom YAML marshaling for Ratio.
// Integers are written as numbers, fractions as quoted "n/d" strings.
func (r *Ratio) MarshalYAML() (any, error) {
	if r.IsInt() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: r.Num().String()}, nil
	}

	return r.RatString(), nil
}

func newRatio(v *big.Rat) *Ratio {
	r := &Ratio{}
	r.Set(v)

	return r
}
