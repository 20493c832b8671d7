package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "additional information", b: "additional information", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "abc", b: "", want: 0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "shifted", a: "abcd", b: "bcde", want: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatioMultibyte(t *testing.T) {
	// Runes, not bytes, are the comparison unit
	assert.InDelta(t, 1.0, Ratio("naïve", "naïve"), 1e-9)
	assert.InDelta(t, 0.8, Ratio("naïve", "naive"), 1e-9)
}

func TestAtLeast(t *testing.T) {
	score, ok := AtLeast("iii. additional information", "iii. additional informaton", 0.8)
	assert.True(t, ok)
	assert.Greater(t, score, 0.9)

	_, ok = AtLeast("iii. additional information", "signature", 0.8)
	assert.False(t, ok)
}

func TestFirstWindow(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		pattern   string
		threshold float64
		limit     int
		wantOK    bool
		wantOff   int
	}{
		{name: "exact window", text: "xxhelloxx", pattern: "hello", threshold: 1, limit: -1, wantOK: true, wantOff: 2},
		{name: "first fuzzy window", text: "xxhellxxx", pattern: "hello", threshold: 0.8, limit: -1, wantOK: true, wantOff: 1},
		{name: "no window", text: "abcdefgh", pattern: "hello", threshold: 0.8, limit: -1, wantOK: false},
		{name: "pattern longer than text", text: "hel", pattern: "hello", threshold: 0.5, limit: -1, wantOK: false},
		{name: "empty pattern", text: "hello", pattern: "", threshold: 0.5, limit: -1, wantOK: false},
		{name: "limit excludes match", text: "xxhelloxx", pattern: "hello", threshold: 1, limit: 2, wantOK: false},
		{name: "limit includes match", text: "xxhelloxx", pattern: "hello", threshold: 1, limit: 3, wantOK: true, wantOff: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstWindow(Runes(tt.text), Runes(tt.pattern), tt.threshold, tt.limit)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantOff, got.Offset)
				assert.GreaterOrEqual(t, got.Score, tt.threshold)
			}
		})
	}
}

func TestFirstWindowAgreesWithRatio(t *testing.T) {
	text := "theinventorsconfirmthataleastonecontributormustsignthisform"
	pattern := "atleastonecontributormustsign"

	got, ok := FirstWindow(Runes(text), Runes(pattern), 0.8, -1)
	assert.True(t, ok)

	runes := Runes(text)
	for i := 0; i < got.Offset; i++ {
		window := runes[i : i+len(Runes(pattern))]
		var s string
		for _, r := range window {
			s += r
		}
		assert.Less(t, Ratio(pattern, s), 0.8, "offset %d should not match", i)
	}
}
