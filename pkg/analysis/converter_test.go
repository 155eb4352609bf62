package analysis

import (
	"context"
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/cs2cg/pkg/twoport"
)

func testConfig(inductanceNH float64) Config {
	cfg := DefaultConfig()
	cfg.InductanceNH = inductanceNH
	return cfg
}

// 1 GHz point used throughout.
var point1G = RecordFromValues([9]float64{1e9, 0.1, 0, 0.9, -10, 0.05, 5, 0.2, 0})

func sweep(n int) []Record {
	rng := rand.New(rand.NewSource(7))
	records := make([]Record, n)
	for i := range records {
		records[i] = RecordFromValues([9]float64{
			float64(i+1) * 1e8,
			0.05 + 0.9*rng.Float64(), 360*rng.Float64() - 180,
			0.5 + 5*rng.Float64(), 360*rng.Float64() - 180,
			0.01 + 0.1*rng.Float64(), 360*rng.Float64() - 180,
			0.05 + 0.9*rng.Float64(), 360*rng.Float64() - 180,
		})
	}
	return records
}

func TestConvertRecordScenario(t *testing.T) {
	conv := NewConverter(testConfig(0))
	res := conv.ConvertRecord(point1G)

	assert.False(t, res.Singular)
	assert.Equal(t, 1e9, res.Frequency)

	want := [9]float64{
		1e9,
		0.4500512731187681, -18.160535258205606,
		0.5883161776580658, 154.384734804909,
		0.5381398856899346, -6.488972444533108,
		0.10896116019689357, 110.56706369902395,
	}
	got := res.Values()
	for i := range want {
		assert.False(t, math.IsNaN(got[i]) || math.IsInf(got[i], 0), "column %d", i)
		assert.InDelta(t, want[i], got[i], 1e-9, "column %d", i)
	}

	assert.Equal(t, res, conv.ConvertRecord(point1G), "conversion must be deterministic")
}

func TestConvertRecordWithInductor(t *testing.T) {
	res := NewConverter(testConfig(1)).ConvertRecord(
		RecordFromValues([9]float64{2e9, 0.3, -40, 2.1, 120, 0.08, 60, 0.5, -30}))

	want := [9]float64{
		2e9,
		0.447491891490088, -13.2857431001644,
		0.573777362693465, 10.3253381180052,
		0.573792201803453, 10.3254273749114,
		0.447477705917169, -13.2869804626502,
	}
	got := res.Values()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "column %d", i)
	}
}

func TestZeroInductanceInvariance(t *testing.T) {
	conv := NewConverter(testConfig(0))
	for i, r := range sweep(20) {
		s := r.TwoPort()
		direct := twoport.YToS(twoport.CommonSourceToGate(twoport.SToY(s)))
		st := conv.Stages(r.Frequency, s)

		assert.Equal(t, complex128(0), st.SeriesZ, "record %d", i)
		w, g := direct.Entries(), st.DegenS.Entries()
		for k := range w {
			delta := 1e-8 * math.Max(1, cmplx.Abs(w[k]))
			assert.InDelta(t, real(w[k]), real(g[k]), delta, "record %d entry %d", i, k)
			assert.InDelta(t, imag(w[k]), imag(g[k]), delta, "record %d entry %d", i, k)
		}
	}
}

func TestStagesIntermediate(t *testing.T) {
	conv := NewConverter(testConfig(0.7))
	s := point1G.TwoPort()
	st := conv.Stages(point1G.Frequency, s)

	assert.Equal(t, s, st.SourceS)
	assert.Equal(t, twoport.SToY(s), st.SourceY)
	assert.Equal(t, twoport.CommonSourceToGate(st.SourceY), st.GateY)
	assert.Equal(t, st.GateZ.AddAll(st.SeriesZ), st.DegenZ)
	for i, want := range st.GateZ.Entries() {
		assert.InDelta(t, 0, cmplx.Abs(want-st.GateYInv.Entries()[i]), 1e-9*math.Max(1, cmplx.Abs(want)), "entry %d", i)
	}
	assert.Equal(t, twoport.Invert(twoport.Normalize(st.DegenZ, 50)), st.DegenY)
	assert.InDelta(t, 2*math.Pi*1e9*1e6*0.7e-9, imag(st.SeriesZ), 1e-3)
	assert.False(t, st.Singular)
}

func TestMagnitudeAndPhaseRange(t *testing.T) {
	for _, l := range []float64{0, 0.3, 2, -1} {
		for i, res := range NewConverter(testConfig(l)).Convert(sweep(50)) {
			for _, p := range []twoport.Polar{res.S11, res.S21, res.S12, res.S22} {
				require.False(t, math.IsNaN(p.Mag), "L=%g record %d", l, i)
				assert.GreaterOrEqual(t, p.Mag, 0.0)
				assert.Greater(t, p.Phase, -180.0)
				assert.LessOrEqual(t, p.Phase, 180.0)
			}
		}
	}
}

func TestConvertPreservesOrder(t *testing.T) {
	records := sweep(64)
	cfg := testConfig(0.5)

	cfg.Workers = 1
	sequential := NewConverter(cfg).Convert(records)
	cfg.Workers = 8
	parallel := NewConverter(cfg).Convert(records)

	require.Len(t, parallel, len(records))
	assert.Equal(t, sequential, parallel)
	for i := range records {
		assert.Equal(t, records[i].Frequency, parallel[i].Frequency)
	}
}

func TestConvertPermutation(t *testing.T) {
	records := sweep(40)
	conv := NewConverter(testConfig(0.25))
	base := conv.Convert(records)

	perm := rand.New(rand.NewSource(11)).Perm(len(records))
	shuffled := make([]Record, len(records))
	for i, p := range perm {
		shuffled[i] = records[p]
	}

	out := conv.Convert(shuffled)
	for i, p := range perm {
		assert.Equal(t, base[p], out[i], "position %d", i)
	}
}

func TestConvertSingular(t *testing.T) {
	// (1+S11)(1+S22) == S12*S21 for S11 = S22 = 0, S12 = S21 = 1.
	r := RecordFromValues([9]float64{1e9, 0, 0, 1, 0, 1, 0, 0, 0})
	conv := NewConverter(testConfig(0))

	st := conv.Stages(r.Frequency, r.TwoPort())
	assert.True(t, st.Singular)
	assert.False(t, st.SourceY.IsFinite())

	res := conv.ConvertRecord(r)
	assert.True(t, res.Singular)
	v := res.Values()
	nonFinite := false
	for _, x := range v[1:] {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			nonFinite = true
		}
	}
	assert.True(t, nonFinite, "singular input must not produce clean values: %v", v)
}

func TestConvertEmpty(t *testing.T) {
	out, err := NewConverter(testConfig(1)).ConvertContext(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewConverter(testConfig(1)).ConvertContext(ctx, sweep(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestVerify(t *testing.T) {
	cfg := testConfig(0.4)
	cfg.Verify = true
	for i, res := range NewConverter(cfg).Convert(sweep(10)) {
		assert.False(t, res.Mismatch, "record %d", i)
	}

	res := NewConverter(cfg).ConvertRecord(RecordFromValues([9]float64{1e9, 0, 0, 1, 0, 1, 0, 0, 0}))
	assert.True(t, res.Singular)
	assert.False(t, res.Mismatch)
}

func TestRecordValuesRoundTrip(t *testing.T) {
	v := [9]float64{3e9, 0.1, 1, 0.2, 2, 0.3, 3, 0.4, 4}
	r := RecordFromValues(v)
	assert.Equal(t, v, r.Values())
	assert.Equal(t, 0.2, r.S21.Mag)
	assert.Equal(t, 3.0, r.S12.Phase)
}

func TestConfigWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 16
	assert.Equal(t, 4, cfg.workers(4))
	cfg.Workers = 0
	assert.GreaterOrEqual(t, cfg.workers(100), 1)
	cfg.Workers = 3
	assert.Equal(t, 3, cfg.workers(100))
}
