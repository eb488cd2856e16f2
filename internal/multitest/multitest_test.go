package multitest

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for name := range methodNames {
		m, err := ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	_, err := ParseMethod("fdr_unheard_of")
	require.Error(t, err)
}

func TestAdjust_Empty(t *testing.T) {
	got, err := Adjust(FDRBH, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAdjust_BenjaminiHochberg(t *testing.T) {
	// Classic fixture: sorted ranks give 0.01*4/1, 0.02*4/2, 0.03*4/3,
	// then the step-up pass pulls everything down to 0.04.
	got, err := Adjust(FDRBH, []float64{0.01, 0.02, 0.03, 0.5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.04, 0.04, 0.04, 0.5}, got, 1e-12)
}

func TestAdjust_BHInputOrderIndependent(t *testing.T) {
	got, err := Adjust(FDRBH, []float64{0.5, 0.03, 0.01, 0.02})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.04, 0.04, 0.04}, got, 1e-12)
}

func TestAdjust_Bonferroni(t *testing.T) {
	got, err := Adjust(Bonferroni, []float64{0.01, 0.02, 0.03, 0.5})
	require.NoError(t, err)
	// 0.5*4 clips at 1.
	assert.InDeltaSlice(t, []float64{0.04, 0.08, 0.12, 1.0}, got, 1e-12)
}

func TestAdjust_Sidak(t *testing.T) {
	got, err := Adjust(Sidak, []float64{0.01, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1-0.99*0.99, got[0], 1e-12)
	assert.InDelta(t, 0.75, got[1], 1e-12)
}

func TestAdjust_Holm(t *testing.T) {
	got, err := Adjust(Holm, []float64{0.01, 0.02, 0.03, 0.5})
	require.NoError(t, err)
	// Multipliers 4,3,2,1 with a running max: 0.04, 0.06, 0.06, 0.5.
	assert.InDeltaSlice(t, []float64{0.04, 0.06, 0.06, 0.5}, got, 1e-12)
}

func TestAdjust_BenjaminiYekutieli(t *testing.T) {
	got, err := Adjust(FDRBY, []float64{0.01, 0.02, 0.03, 0.5})
	require.NoError(t, err)
	h := 1.0 + 0.5 + 1.0/3 + 0.25
	assert.InDeltaSlice(t, []float64{0.04 * h, 0.04 * h, 0.04 * h, 1.0}, got, 1e-12)
}

func TestAdjust_TwoStageBH(t *testing.T) {
	// Three of four hypotheses rejected at the first stage, so the
	// null count estimate is 1 and adjusted values scale by 1/4.
	got, err := Adjust(FDRTwoStageBH, []float64{0.001, 0.002, 0.003, 0.5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.001, 0.001, 0.001, 0.125}, got, 1e-12)
}

func TestAdjust_TwoStageNoRejections(t *testing.T) {
	// Nothing survives the first stage: plain BH values come back.
	got, err := Adjust(FDRTwoStageBH, []float64{0.4, 0.5, 0.6})
	require.NoError(t, err)
	bh, err := Adjust(FDRBH, []float64{0.4, 0.5, 0.6})
	require.NoError(t, err)
	assert.InDeltaSlice(t, bh, got, 1e-12)
}

func TestAdjust_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pvals := make([]float64, 50)
	for i := range pvals {
		pvals[i] = rng.Float64()
	}

	for name, method := range methodNames {
		t.Run(name, func(t *testing.T) {
			got, err := Adjust(method, pvals)
			require.NoError(t, err)
			require.Len(t, got, len(pvals))

			for i := range got {
				// Adjusted values never drop below the raw p-value
				// and stay in [0, 1].
				if method != FDRTwoStageBH && method != FDRTwoStageBKY {
					assert.GreaterOrEqual(t, got[i], pvals[i], "index %d", i)
				}
				assert.GreaterOrEqual(t, got[i], 0.0)
				assert.LessOrEqual(t, got[i], 1.0)
			}

			// Sorting by raw p-value yields non-decreasing adjusted
			// values for every supported method.
			order := make([]int, len(pvals))
			for i := range order {
				order[i] = i
			}
			sort.Slice(order, func(i, j int) bool {
				return pvals[order[i]] < pvals[order[j]]
			})
			for i := 1; i < len(order); i++ {
				assert.GreaterOrEqual(t, got[order[i]], got[order[i-1]])
			}
		})
	}
}

func TestAdjust_HommelBoundedByHolm(t *testing.T) {
	pvals := []float64{0.01, 0.015, 0.04, 0.2, 0.7}
	hommel, err := Adjust(Hommel, pvals)
	require.NoError(t, err)
	holm, err := Adjust(Holm, pvals)
	require.NoError(t, err)
	for i := range pvals {
		assert.LessOrEqual(t, hommel[i], holm[i])
		assert.GreaterOrEqual(t, hommel[i], pvals[i])
	}
}

func TestAdjustByName_Unknown(t *testing.T) {
	_, err := AdjustByName("nope", []float64{0.1})
	require.Error(t, err)
}
