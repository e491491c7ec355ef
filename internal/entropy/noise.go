package entropy

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Trend is smooth coherent noise indexed by a channel and a day. Adjacent
// days return nearby values, which gives price series some momentum.
type Trend struct {
	noise     opensimplex.Noise
	frequency float64
}

// NewTrend returns trend noise for the given seed.
func NewTrend(seed int64) *Trend {
	return &Trend{noise: opensimplex.New(seed), frequency: 0.15}
}

// At returns a value in [-1, 1] for channel on day.
func (t *Trend) At(channel, day int) float64 {
	v := octaveNoise(t.noise, float64(channel)*7.31, float64(day), 2, t.frequency, 0.5)
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// octaveNoise layers frequencies into fractal noise.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
