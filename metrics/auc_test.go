package metrics

import (
	"math"
	"testing"
)

func TestTrapezoidAUC(t *testing.T) {
	tests := []struct {
		name    string
		x       []float64
		y       []float64
		want    float64
		wantErr bool
	}{
		{name: "diagonal", x: []float64{0, 0.5, 1}, y: []float64{0, 0.5, 1}, want: 0.5},
		{name: "perfect", x: []float64{0, 0, 1}, y: []float64{0, 1, 1}, want: 1},
		{name: "decreasing x", x: []float64{1, 0.5, 0}, y: []float64{1, 0.75, 0}, want: 0.625},
		{name: "plateaus", x: []float64{1, 1, 0.5, 0.5, 0}, y: []float64{1, 1, 1, 0.5, 0}, want: 0.625},
		{name: "non monotone", x: []float64{0, 1, 0.5}, y: []float64{0, 1, 1}, wantErr: true},
		{name: "too few points", x: []float64{0}, y: []float64{0}, wantErr: true},
		{name: "length mismatch", x: []float64{0, 1}, y: []float64{0}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TrapezoidAUC(tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TrapezoidAUC() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("TrapezoidAUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrapezoidAUCDoesNotModifyInput(t *testing.T) {
	x := []float64{1, 0.5, 0}
	y := []float64{1, 0.5, 0}
	if _, err := TrapezoidAUC(x, y); err != nil {
		t.Fatal(err)
	}
	if x[0] != 1 || y[0] != 1 {
		t.Error("input slices were reordered")
	}
}

func TestClassifyAUC(t *testing.T) {
	tests := []struct {
		auc  float64
		want Quality
	}{
		{0.3, QualityFailed},
		{0.6, QualityFailed},
		{0.65, QualityPoor},
		{0.7, QualityPoor},
		{0.75, QualityFair},
		{0.8, QualityFair},
		{0.85, QualityGood},
		{0.9, QualityGood},
		{0.95, QualityExcellent},
		{1.0, QualityExcellent},
	}
	for _, tt := range tests {
		if got := ClassifyAUC(tt.auc); got != tt.want {
			t.Errorf("ClassifyAUC(%v) = %v, want %v", tt.auc, got, tt.want)
		}
	}
}
