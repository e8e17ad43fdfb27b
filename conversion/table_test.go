package conversion

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenruler/factor"
	"screenruler/internal/graph"
	"screenruler/unit"
)

func mustDefault(t *testing.T) *Table {
	t.Helper()

	tbl, err := Default()
	require.NoError(t, err)

	return tbl
}

func rat(a, b int64) *big.Rat {
	return big.NewRat(a, b)
}

func requireRat(t *testing.T, want, got *big.Rat, msgAndArgs ...any) {
	t.Helper()

	require.NotNil(t, got, msgAndArgs...)

	if want.Cmp(got) != 0 {
		require.Failf(t, "rationals differ", "want %s, got %s %s", want.RatString(), got.RatString(), describe(msgAndArgs))
	}
}

func describe(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}

	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}

	return fmt.Sprint(msgAndArgs...)
}

func TestConvert_Literals(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	tests := []struct {
		v        *big.Rat
		from, to unit.Unit
		want     *big.Rat
	}{
		{rat(96, 1), unit.Pixel, unit.Inch, rat(1, 1)},
		{rat(1, 1), unit.Inch, unit.Point, rat(72, 1)},
		{rat(1, 1), unit.Inch, unit.Millimeter, rat(127, 5)},
		{rat(1, 1), unit.Inch, unit.Pica, rat(6, 1)},
		{rat(1, 1), unit.Point, unit.Em, rat(1, 12)},
		{rat(96, 1), unit.Pixel, unit.Point, rat(72, 1)},
		{rat(1, 1), unit.Em, unit.Pica, rat(1, 1)},
		{rat(254, 1), unit.Millimeter, unit.Pixel, rat(960, 1)},
	}

	for _, tt := range tests {
		got, err := tbl.Convert(tt.v, tt.from, tt.to)
		require.NoError(t, err)
		requireRat(t, tt.want, got, "%s %s -> %s", tt.v.RatString(), tt.from, tt.to)
	}

	// The composite pair agrees with the two-hop conversion.
	inches, err := tbl.Convert(rat(96, 1), unit.Pixel, unit.Inch)
	require.NoError(t, err)
	points, err := tbl.Convert(inches, unit.Inch, unit.Point)
	require.NoError(t, err)
	requireRat(t, rat(72, 1), points)
}

func TestConvert_RoundTrip(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	for _, a := range tbl.Units() {
		for _, b := range tbl.Units() {
			for i := int64(0); i <= 100; i++ {
				x := rat(i, 1)

				there, err := tbl.Convert(x, a, b)
				require.NoError(t, err)

				back, err := tbl.Convert(there, b, a)
				require.NoError(t, err)
				requireRat(t, x, back, "%s -> %s -> %s", a, b, a)
			}
		}
	}
}

func TestConvert_Identity(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	for _, a := range tbl.Units() {
		for _, x := range []*big.Rat{rat(0, 1), rat(1, 3), rat(-7, 2), rat(1000, 1)} {
			got, err := tbl.Convert(x, a, a)
			require.NoError(t, err)
			requireRat(t, x, got, a)
		}

		p, err := tbl.Path(a, a)
		require.NoError(t, err)
		assert.Equal(t, "identity", p)
	}
}

func TestConvert_Composition(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)
	units := tbl.Units()

	for _, a := range units {
		for _, b := range units {
			for _, c := range units {
				for _, x := range []*big.Rat{rat(1, 1), rat(17, 3), rat(96, 1)} {
					ab, err := tbl.Convert(x, a, b)
					require.NoError(t, err)
					abc, err := tbl.Convert(ab, b, c)
					require.NoError(t, err)
					ac, err := tbl.Convert(x, a, c)
					require.NoError(t, err)

					requireRat(t, ac, abc, "%s -> %s -> %s", a, b, c)
				}
			}
		}
	}
}

func TestFactor_Inverses(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)
	one := rat(1, 1)

	for _, a := range tbl.Units() {
		for _, b := range tbl.Units() {
			ab, err := tbl.Factor(a, b)
			require.NoError(t, err)
			ba, err := tbl.Factor(b, a)
			require.NoError(t, err)

			requireRat(t, one, new(big.Rat).Mul(ab, ba), "%s <-> %s", a, b)
			assert.Positive(t, ab.Sign())
		}
	}
}

func TestConvert_DoesNotMutate(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	x := rat(3, 1)
	got, err := tbl.Convert(x, unit.Inch, unit.Point)
	require.NoError(t, err)
	requireRat(t, rat(3, 1), x)

	got.SetInt64(0)
	f, err := tbl.Factor(unit.Inch, unit.Point)
	require.NoError(t, err)
	requireRat(t, rat(72, 1), f)

	f.SetInt64(1)
	again, err := tbl.Factor(unit.Inch, unit.Point)
	require.NoError(t, err)
	requireRat(t, rat(72, 1), again)
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	_, err := tbl.Convert(rat(1, 1), "cm", unit.Inch)
	require.ErrorIs(t, err, ErrUnknownUnit)
	assert.Contains(t, err.Error(), `"cm" (did you mean "em" or "mm"?)`)

	_, err = tbl.Convert(rat(1, 1), "inches", unit.Point)
	require.ErrorIs(t, err, ErrUnknownUnit)
	assert.Contains(t, err.Error(), `did you mean "in"`)

	_, err = tbl.Convert(rat(1, 1), "furlong", unit.Point)
	require.ErrorIs(t, err, ErrUnknownUnit)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = tbl.Convert(rat(1, 1), unit.Inch, "")
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = tbl.Convert(nil, unit.Inch, unit.Inch)
	require.ErrorIs(t, err, ErrNilValue)

	_, err = tbl.Factor(unit.Inch, "cm")
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = tbl.Path("cm", unit.Inch)
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = tbl.Label("cm")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestConvertFloat(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	got, err := tbl.ConvertFloat(48, unit.Pixel, unit.Inch)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)

	got, err = tbl.ConvertFloat(1, unit.Point, unit.Em)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/12, got, 1e-15)

	_, err = tbl.ConvertFloat(1, unit.Point, "cm")
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = tbl.ConvertFloat(posInf(), unit.Point, unit.Em)
	require.ErrorIs(t, err, ErrNotFinite)
}

func TestTable_Units(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	units := tbl.Units()
	assert.Equal(t, unit.Builtin, units)
	assert.Equal(t, 6, tbl.Len())

	units[0] = "zz"
	assert.Equal(t, unit.Pixel, tbl.Units()[0], "Units returns a copy")

	assert.True(t, tbl.Has(unit.Millimeter))
	assert.False(t, tbl.Has("cm"))

	label, err := tbl.Label(unit.Millimeter)
	require.NoError(t, err)
	assert.Equal(t, "Millimeters", label)
}

func TestTable_Path(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	p, err := tbl.Path(unit.Pixel, unit.Inch)
	require.NoError(t, err)
	assert.Equal(t, "authored", p)

	p, err = tbl.Path(unit.Pixel, unit.Point)
	require.NoError(t, err)
	assert.Equal(t, "px -> in (x1/96) -> pt (x72)", p)

	p, err = tbl.Path(unit.Inch, unit.Pixel)
	require.NoError(t, err)
	assert.Equal(t, "in -> px (x96)", p)
}

func TestBuild_Disconnected(t *testing.T) {
	t.Parallel()

	ft := factor.NewTable().
		Add("a", "b", rat(2, 1)).
		Add("c", "d", rat(3, 1))

	tbl, err := Build(ft)
	require.Error(t, err)
	assert.Nil(t, tbl, "no partial table")

	require.ErrorIs(t, err, ErrConfiguration)
	require.ErrorIs(t, err, graph.ErrNoPath)

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, unit.Unit("a"), cerr.From)
	assert.Equal(t, unit.Unit("c"), cerr.To)
	assert.Contains(t, err.Error(), "cannot convert a to c")
}

func TestBuild_IsolatedUnit(t *testing.T) {
	t.Parallel()

	ft := factor.Default().Declare("cm", "Centimeters")

	_, err := Build(ft)
	require.ErrorIs(t, err, ErrConfiguration)

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, unit.Pixel, cerr.From)
	assert.Equal(t, unit.Unit("cm"), cerr.To)
}

func TestBuild_InvalidTable(t *testing.T) {
	t.Parallel()

	ft := factor.NewTable().
		Add("a", "b", rat(2, 1)).
		Add("b", "a", rat(1, 3))

	tbl, err := Build(ft)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Nil(t, tbl)
	assert.Contains(t, err.Error(), "conflicting_factor")

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, cerr.From)

	_, err = Build(nil)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestBuild_Extended(t *testing.T) {
	t.Parallel()

	yaml := `
factors:
  - from: px
    to: in
    factor: 1/96
  - from: cm
    to: mm
    factor: 10
  - from: in
    to: mm
    factor: 25.4
  - from: ft
    to: in
    factor: 12
  - from: tw
    to: pt
    decimal: 0.05
  - from: in
    to: pt
    factor: 72
`

	ft, err := factor.Parse([]byte(yaml), factor.DefaultPrecision)
	require.NoError(t, err)

	tbl, err := Build(ft)
	require.NoError(t, err)

	got, err := tbl.Convert(rat(1, 1), "ft", "cm")
	require.NoError(t, err)
	requireRat(t, rat(1524, 50), got)

	got, err = tbl.Convert(rat(1440, 1), "tw", "in")
	require.NoError(t, err)
	requireRat(t, rat(1, 1), got)

	for _, a := range tbl.Units() {
		for _, b := range tbl.Units() {
			for i := int64(0); i < 100; i++ {
				there, err := tbl.Convert(rat(i, 1), a, b)
				require.NoError(t, err)
				back, err := tbl.Convert(there, b, a)
				require.NoError(t, err)
				requireRat(t, rat(i, 1), back, "%s <-> %s", a, b)
			}
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	first := mustDefault(t)
	second := mustDefault(t)

	for _, a := range first.Units() {
		for _, b := range first.Units() {
			f1, _ := first.Factor(a, b)
			f2, _ := second.Factor(a, b)
			requireRat(t, f1, f2)

			p1, _ := first.Path(a, b)
			p2, _ := second.Path(a, b)
			assert.Equal(t, p1, p2)
		}
	}
}

func TestBuild_LeavesFactorTableAlone(t *testing.T) {
	t.Parallel()

	ft := factor.Default()
	before := len(ft.Edges())

	_, err := Build(ft)
	require.NoError(t, err)

	_, err = Build(ft)
	require.NoError(t, err)

	assert.Len(t, ft.Edges(), before)
}

func TestTable_ConcurrentReads(t *testing.T) {
	t.Parallel()

	tbl := mustDefault(t)

	var wg sync.WaitGroup

	errs := make(chan error, 8)

	for w := 0; w < 8; w++ {
		w := w

		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < 200; i++ {
				for _, a := range tbl.Units() {
					for _, b := range tbl.Units() {
						x := rat(int64(i+w), 1)

						there, err := tbl.Convert(x, a, b)
						if err != nil {
							errs <- err
							return
						}

						back, err := tbl.Convert(there, b, a)
						if err != nil {
							errs <- err
							return
						}

						if back.Cmp(x) != 0 {
							errs <- errors.New("round trip mismatch for " + string(a) + "/" + string(b))
							return
						}
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

type recordingObserver struct {
	mu          sync.Mutex
	derived     map[string]int
	conversions int
}

func (r *recordingObserver) ObserveDerived(from, to unit.Unit, steps int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.derived == nil {
		r.derived = make(map[string]int)
	}

	r.derived[string(from)+"->"+string(to)] = steps
}

func (r *recordingObserver) ObserveConversion(unit.Unit, unit.Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conversions++
}

func TestWithObserver(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}

	tbl, err := Default(WithObserver(obs))
	require.NoError(t, err)

	// 6 units -> 30 ordered pairs, 5 of them authored.
	assert.Len(t, obs.derived, 25)
	assert.Equal(t, 2, obs.derived["px->pt"])
	assert.Equal(t, 1, obs.derived["in->px"])
	assert.NotContains(t, obs.derived, "px->in")

	_, err = tbl.Convert(rat(1, 1), unit.Inch, unit.Point)
	require.NoError(t, err)
	_, err = tbl.Convert(rat(1, 1), unit.Inch, "cm")
	require.Error(t, err)
	assert.Equal(t, 1, obs.conversions, "failed conversions are not observed")

	_, err = Default(WithObserver(nil))
	require.NoError(t, err)
}

func posInf() float64 {
	return math.Inf(1)
}
