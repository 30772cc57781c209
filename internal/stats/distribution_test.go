package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDistribution_EmptyInput(t *testing.T) {
	d := ComputeDistribution(nil)
	assert.Equal(t, Distribution{}, d)
}

func TestComputeDistribution_Quartiles(t *testing.T) {
	d := ComputeDistribution(recordsFromValues(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))

	assert.Equal(t, 3.0, d.Q1)
	assert.Equal(t, 6.0, d.Q2)
	assert.Equal(t, 8.0, d.Q3)
	assert.Equal(t, 5.0, d.IQR)
	assert.Equal(t, 0, d.OutlierCount)
	assert.Equal(t, ShapeNormal, d.Shape)
}

func TestComputeDistribution_QuartileOrderingInvariant(t *testing.T) {
	inputs := [][]float64{
		{5},
		{1, 1, 1, 1},
		{3, 1, 4, 1, 5, 9, 2, 6},
		{-10, 0, 10, 100, -50},
	}
	for _, values := range inputs {
		d := ComputeDistribution(recordsFromValues(values...))
		assert.LessOrEqual(t, d.Q1, d.Q2)
		assert.LessOrEqual(t, d.Q2, d.Q3)
		assert.GreaterOrEqual(t, d.IQR, 0.0)
	}
}

func TestComputeDistribution_TukeyOutliers(t *testing.T) {
	d := ComputeDistribution(recordsFromValues(1, 2, 3, 4, 5, 6, 7, 8, 9, 100))

	assert.Equal(t, 1, d.OutlierCount)
	assert.Equal(t, ShapeSkewedRight, d.Shape)
}

func TestComputeDistribution_SkewedLeft(t *testing.T) {
	d := ComputeDistribution(recordsFromValues(0, 91, 92, 93, 94, 95, 96, 97, 98, 99))
	assert.Equal(t, ShapeSkewedLeft, d.Shape)
}

func TestComputeDistribution_Bimodal(t *testing.T) {
	d := ComputeDistribution(recordsFromValues(1, 1, 1, 1, 1, 10, 10, 10, 10, 10))
	assert.Equal(t, ShapeBimodal, d.Shape)
}

func TestComputeDistribution_ConstantValues(t *testing.T) {
	d := ComputeDistribution(recordsFromValues(4, 4, 4, 4))
	assert.Equal(t, ShapeNormal, d.Shape)
	assert.Equal(t, 0.0, d.IQR)
	assert.Equal(t, 0, d.OutlierCount)
}
