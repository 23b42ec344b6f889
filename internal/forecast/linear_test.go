package forecast

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestLinearModel_RisingTrend(t *testing.T) {
	// 60 consecutive days rising from 50.00 to 55.00 (~0.0847/day).
	s := linearSeries("rice", 60, 50, 55)
	m := &LinearModel{}

	points, err := m.FitAndExtrapolate(s, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}

	// Consecutive dates starting the day after the last observation.
	last := s.LastDate()
	for i, p := range points {
		want := last.AddDate(0, 0, i+1)
		if !p.Date.Equal(want) {
			t.Errorf("point %d: date %v, want %v", i, p.Date, want)
		}
	}

	// Known extrapolation values for a perfect line.
	if math.Abs(points[0].Expected-55.08) > 0.02 {
		t.Errorf("first expected = %.2f, want ~55.08", points[0].Expected)
	}
	if math.Abs(points[6].Expected-55.59) > 0.02 {
		t.Errorf("last expected = %.2f, want ~55.59", points[6].Expected)
	}

	for i, p := range points {
		if !(p.Lower < p.Expected && p.Expected < p.Upper) {
			t.Errorf("point %d: bounds not strict: %.2f / %.2f / %.2f", i, p.Lower, p.Expected, p.Upper)
		}
		if i > 0 && points[i].Expected <= points[i-1].Expected {
			t.Errorf("point %d: expected values not strictly increasing", i)
		}
	}
}

func TestLinearModel_BandWidensWithDistance(t *testing.T) {
	s := linearSeries("corn", 90, 20, 25)
	m := &LinearModel{}

	points, err := m.FitAndExtrapolate(s, 60)
	if err != nil {
		t.Fatal(err)
	}
	prev := 0.0
	for i, p := range points {
		width := p.Upper - p.Lower
		if width < prev-0.011 { // allow 2dp rounding jitter
			t.Fatalf("point %d: band width %.4f shrank below %.4f", i, width, prev)
		}
		if width > prev {
			prev = width
		}
	}
	if first, last := points[0].Upper-points[0].Lower, points[59].Upper-points[59].Lower; last <= first {
		t.Errorf("band did not widen over horizon: first %.2f, last %.2f", first, last)
	}
}

func TestLinearModel_SeasonalHorizonIsDeterministic(t *testing.T) {
	s := linearSeries("rice", 120, 40, 48)
	m := &LinearModel{}

	a, err := m.FitAndExtrapolate(s, 90)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.FitAndExtrapolate(s, 90)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated fits over the same series differ")
	}
}

func TestLinearModel_InsufficientData(t *testing.T) {
	s := flatSeries("rice", 1, 50)
	m := &LinearModel{}

	_, err := m.FitAndExtrapolate(s, 7)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestLinearModel_NeverNegative(t *testing.T) {
	// Steeply falling prices would extrapolate below zero without clamping.
	s := linearSeries("onion", 30, 30, 1)
	m := &LinearModel{}

	points, err := m.FitAndExtrapolate(s, 60)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range points {
		if p.Lower < 0 || p.Expected < 0 {
			t.Errorf("point %d: negative forecast %.2f / %.2f", i, p.Lower, p.Expected)
		}
		if p.Lower > p.Expected || p.Expected > p.Upper {
			t.Errorf("point %d: bound ordering violated", i)
		}
	}
}

func TestLeastSquares(t *testing.T) {
	slope, intercept := leastSquares([]float64{1, 3, 5, 7})
	if math.Abs(slope-2) > 1e-9 || math.Abs(intercept-1) > 1e-9 {
		t.Errorf("leastSquares = (%.4f, %.4f), want (2, 1)", slope, intercept)
	}
}
