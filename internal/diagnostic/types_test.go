package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Error(t *testing.T) {
	t.Parallel()

	d := &Diagnostics{}
	assert.NoError(t, d.Error())

	d.AddWarning("duplicate_factor", "authored twice", "px->in", "")
	assert.NoError(t, d.Error())
	assert.False(t, d.HasErrors())

	d.AddError("self_edge", "edge from a unit to itself", PairKey("mm", "mm"), "")
	d.AddError("invalid_unit", "bad token", "", "m m")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "[mm->mm]: [self_edge] edge from a unit to itself; m m: [invalid_unit] bad token", err.Error())
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	t.Parallel()

	a := &Diagnostics{}
	a.AddInfo("unused_unit", "declared but never used", "", "cm")

	b := Diagnostics{}
	b.AddError("nonpositive_factor", "factor must be positive", "in->mm", "")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 2)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityInfo, all[1].Severity)
	assert.True(t, a.HasCode("unused_unit"))
	assert.False(t, a.HasCode("self_edge"))
	assert.Equal(t, "error", all[0].Severity.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
