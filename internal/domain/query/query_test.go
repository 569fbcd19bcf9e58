package query

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/astrovis/starfield/internal/domain"
)

func TestBuild_Threshold(t *testing.T) {
	tests := []struct {
		maxPC float64
		want  float64
	}{
		{1, 1000},
		{10, 100},
		{1000, 1},
		{2500, 0.4},
	}
	for _, tt := range tests {
		d, err := Build(tt.maxPC)
		if err != nil {
			t.Fatalf("Build(%v): unexpected error %v", tt.maxPC, err)
		}
		if d.MinParallaxMas != tt.want {
			t.Errorf("Build(%v): threshold %v, want %v", tt.maxPC, d.MinParallaxMas, tt.want)
		}
	}
}

func TestBuild_ThresholdStrictlyDecreasing(t *testing.T) {
	prev := math.Inf(1)
	for _, maxPC := range []float64{0.1, 1, 5, 50, 500, 5e6, 5e12} {
		d, err := Build(maxPC)
		if err != nil {
			t.Fatalf("Build(%v): unexpected error %v", maxPC, err)
		}
		if d.MinParallaxMas <= 0 {
			t.Errorf("Build(%v): threshold %v must stay positive", maxPC, d.MinParallaxMas)
		}
		if d.MinParallaxMas >= prev {
			t.Errorf("Build(%v): threshold %v not strictly below %v", maxPC, d.MinParallaxMas, prev)
		}
		prev = d.MinParallaxMas
	}
}

func TestBuild_RejectsNonPositive(t *testing.T) {
	for _, v := range []float64{0, -4, math.NaN(), math.Inf(1)} {
		if _, err := Build(v); !errors.Is(err, domain.ErrInvalidDistance) {
			t.Errorf("Build(%v): expected ErrInvalidDistance, got %v", v, err)
		}
	}
}

func TestADQL(t *testing.T) {
	d, err := Build(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adql := d.ADQL()
	for _, want := range []string{
		"SELECT source_id, ra, dec, parallax",
		"FROM gaiadr2.gaia_source",
		"parallax >= 100",
		"parallax IS NOT NULL",
	} {
		if !strings.Contains(adql, want) {
			t.Errorf("ADQL %q missing %q", adql, want)
		}
	}
}

func TestADQL_Options(t *testing.T) {
	d, err := Build(10, WithTable("gaiadr3.gaia_source"), WithRowLimit(5000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adql := d.ADQL()
	if !strings.HasPrefix(adql, "SELECT TOP 5000 ") {
		t.Errorf("ADQL %q missing TOP clause", adql)
	}
	if !strings.Contains(adql, "FROM gaiadr3.gaia_source") {
		t.Errorf("ADQL %q missing overridden table", adql)
	}
}

func TestBuild_OptionsIgnoreZeroValues(t *testing.T) {
	d, err := Build(10, WithTable(""), WithRowLimit(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Table != DefaultTable {
		t.Errorf("empty table override changed table to %q", d.Table)
	}
	if strings.Contains(d.ADQL(), "TOP") {
		t.Errorf("zero row limit produced a TOP clause: %q", d.ADQL())
	}
}
