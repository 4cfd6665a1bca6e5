// ABOUTME: Unit tests for proximity band classification
// ABOUTME: Verifies exact threshold boundaries, ordering, and text encoding

package geo

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		want   Band
	}{
		{"zero", 0, AtTarget},
		{"just_under_one", 0.999, AtTarget},
		{"exactly_one", 1.0, VeryClose},
		{"just_under_five", 4.999, VeryClose},
		{"exactly_five", 5.0, Nearby},
		{"just_under_twenty", 19.999, Nearby},
		{"exactly_twenty", 20.0, Moderate},
		{"just_under_hundred", 99.999, Moderate},
		{"exactly_hundred", 100.0, Far},
		{"kilometers_away", 7198.6, Far},
		{"half_circumference", math.Pi * EarthRadiusMeters, Far},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, err := Classify(tt.meters)
			if err != nil {
				t.Fatalf("Classify(%v) returned error: %v", tt.meters, err)
			}
			if band != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.meters, band, tt.want)
			}
		})
	}
}

func TestClassify_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
	}{
		{"negative", -1},
		{"tiny_negative", -0.001},
		{"nan", math.NaN()},
		{"positive_inf", math.Inf(1)},
		{"negative_inf", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Classify(tt.meters); !errors.Is(err, ErrInvalidDistance) {
				t.Errorf("Classify(%v) error = %v, want ErrInvalidDistance", tt.meters, err)
			}
		})
	}
}

func TestBand_Ordering(t *testing.T) {
	ordered := []Band{AtTarget, VeryClose, Nearby, Moderate, Far}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("band %v should sort before %v", ordered[i-1], ordered[i])
		}
	}
}

func TestBand_String(t *testing.T) {
	tests := []struct {
		band Band
		want string
	}{
		{AtTarget, "at_target"},
		{VeryClose, "very_close"},
		{Nearby, "nearby"},
		{Moderate, "moderate"},
		{Far, "far"},
		{Band(42), "band(42)"},
	}

	for _, tt := range tests {
		if got := tt.band.String(); got != tt.want {
			t.Errorf("Band(%d).String() = %q, want %q", int(tt.band), got, tt.want)
		}
	}
}

func TestBand_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Nearby)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"nearby"` {
		t.Errorf("expected JSON \"nearby\", got %s", data)
	}

	var band Band
	if err := json.Unmarshal(data, &band); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if band != Nearby {
		t.Errorf("round trip changed band: got %v", band)
	}
}

func TestBand_UnmarshalUnknown(t *testing.T) {
	var band Band
	if err := json.Unmarshal([]byte(`"teleported"`), &band); err == nil {
		t.Error("expected error for unknown band name")
	}
}

func TestBand_MarshalUnknown(t *testing.T) {
	if _, err := json.Marshal(Band(42)); err == nil {
		t.Error("expected error marshaling unknown band")
	}
}

func TestClassify_PartitionsWithoutGaps(t *testing.T) {
	// Walk distances across every boundary; each must classify without
	// error and bands must never move closer as distance grows.
	prev := AtTarget
	for _, meters := range []float64{0, 0.5, 0.999, 1, 2, 4.999, 5, 10, 19.999, 20, 50, 99.999, 100, 1000, 1e7} {
		band, err := Classify(meters)
		if err != nil {
			t.Fatalf("Classify(%v) returned error: %v", meters, err)
		}
		if band < prev {
			t.Errorf("band regressed at %v m: %v after %v", meters, band, prev)
		}
		prev = band
	}
}
