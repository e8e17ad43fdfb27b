package factor

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"screenruler/unit"
)

// CurrentVersion is the only factor file version understood by Parse.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML factor file from the given path.
// Decimal factors are rounded to digits fractional digits.
func LoadFile(path string, digits int) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read factor file %s: %w", path, err)
	}

	t, err := Parse(data, digits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Parse parses YAML data into a Table.
func Parse(data []byte, digits int) (*Table, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse factor YAML: %w", err)
	}

	applyDefaults(&f)

	return f.Table(digits)
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// Table converts the file into a Table, declaring units in file order
// before any unit first seen in a factor entry.
func (f *File) Table(digits int) (*Table, error) {
	if f.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported factor file version %q", f.Version)
	}

	t := NewTable()

	for i, us := range f.Units {
		u, err := unit.Parse(us.ID)
		if err != nil {
			return nil, fmt.Errorf("units[%d]: %w", i, err)
		}

		ticks := make([]*big.Rat, 0, len(us.Ticks))
		for j, tick := range us.Ticks {
			if tick == nil {
				return nil, fmt.Errorf("units[%d].ticks[%d]: %w: empty tick step", i, j, ErrInvalidFactor)
			}

			ticks = append(ticks, &tick.Rat)
		}

		t.Declare(u, us.Label, ticks...)
	}

	for i, fs := range f.Factors {
		from, err := unit.Parse(fs.From)
		if err != nil {
			return nil, fmt.Errorf("factors[%d].from: %w", i, err)
		}

		to, err := unit.Parse(fs.To)
		if err != nil {
			return nil, fmt.Errorf("factors[%d].to: %w", i, err)
		}

		v, err := fs.value(digits)
		if err != nil {
			return nil, fmt.Errorf("factors[%d] (%s->%s): %w", i, from, to, err)
		}

		t.Add(from, to, v)
	}

	return t, nil
}

func (fs FactorSpec) value(digits int) (*big.Rat, error) {
	switch {
	case fs.Factor != nil && fs.Decimal != nil:
		return nil, errors.New("both factor and decimal are set")
	case fs.Factor != nil:
		return new(big.Rat).Set(&fs.Factor.Rat), nil
	case fs.Decimal != nil:
		return FromDecimal(*fs.Decimal, digits)
	default:
		return nil, fmt.Errorf("%w: neither factor nor decimal is set", ErrInvalidFactor)
	}
}

// ToFile converts a Table into its YAML representation.
// All factors are written as exact rationals.
func ToFile(t *Table) *File {
	f := &File{Version: CurrentVersion}

	for _, d := range t.decls {
		us := UnitSpec{ID: string(d.Unit)}
		if d.Label != d.Unit.Label() {
			us.Label = d.Label
		}

		for _, tick := range d.Ticks {
			us.Ticks = append(us.Ticks, newRatio(tick))
		}

		f.Units = append(f.Units, us)
	}

	for _, e := range t.edges {
		fs := FactorSpec{From: string(e.From), To: string(e.To)}
		if e.Factor != nil {
			fs.Factor = newRatio(e.Factor)
		}

		f.Factors = append(f.Factors, fs)
	}

	return f
}

// Marshal serializes a Table to YAML.
func Marshal(t *Table) ([]byte, error) {
	return yaml.Marshal(ToFile(t))
}

// WriteFile writes a Table to the given path.
func WriteFile(t *Table, path string) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal factor table: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write factor file %s: %w", path, err)
	}

	return nil
}
