package ez

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestSimulateObserved_InvalidSampleSize(t *testing.T) {
	src := rand.NewPCG(1, 2)
	for _, n := range []int{1, 0, -5} {
		_, err := SimulateObserved(Parameters{V: 1, A: 1, T: 0.3}, n, src)
		if !errors.Is(err, ErrInvalidSampleSize) {
			t.Errorf("n=%d: expected ErrInvalidSampleSize, got %v", n, err)
		}
	}
}

func TestSimulateObserved_Bounded(t *testing.T) {
	src := rand.NewPCG(7, 11)
	params := []Parameters{
		{V: 2, A: 2, T: 0.1},
		{V: 0.5, A: 0.5, T: 0.5},
		{V: -2, A: 2, T: 0.3},
	}

	for _, p := range params {
		for _, n := range []int{2, 3, 10, 40} {
			for i := 0; i < 500; i++ {
				s, err := SimulateObserved(p, n, src)
				if err != nil {
					t.Fatalf("simulate failed: %v", err)
				}
				if s.Accuracy <= 0 || s.Accuracy >= 1 {
					t.Fatalf("accuracy %v out of (0,1) for %+v n=%d", s.Accuracy, p, n)
				}
				if s.VarRT <= 0 {
					t.Fatalf("variance %v not positive for %+v n=%d", s.VarRT, p, n)
				}
			}
		}
	}
}

func TestSimulateObserved_Deterministic(t *testing.T) {
	p := Parameters{V: 1.3, A: 0.9, T: 0.2}

	a, err := SimulateObserved(p, 50, rand.NewPCG(42, 0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := SimulateObserved(p, 50, rand.NewPCG(42, 0))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestSamplingDistributions(t *testing.T) {
	src := rand.NewPCG(2024, 3)
	const (
		draws = 10000
		pc    = 0.8
		mrt   = 0.5
		vrt   = 0.1
		n     = 100
	)

	var accSum, accSq, mSum, mSq, vSum float64
	for i := 0; i < draws; i++ {
		acc := SampleAccuracy(pc, n, src)
		m := SampleMeanRT(mrt, vrt, n, src)
		v := SampleVarRT(vrt, n, src)
		accSum += acc
		accSq += acc * acc
		mSum += m
		mSq += m * m
		vSum += v
	}

	accMean := accSum / draws
	mMean := mSum / draws
	if math.Abs(accMean-pc) > 0.005 {
		t.Errorf("accuracy mean %v, want ~%v", accMean, pc)
	}
	if math.Abs(mMean-mrt) > 0.005 {
		t.Errorf("mean rt mean %v, want ~%v", mMean, mrt)
	}
	if vMean := vSum / draws; math.Abs(vMean-vrt) > 0.005 {
		t.Errorf("variance mean %v, want ~%v", vMean, vrt)
	}

	if accVar := accSq/draws - accMean*accMean; accVar > pc*(1-pc)/n+0.001 {
		t.Errorf("accuracy variance %v too large", accVar)
	}
	if mVar := mSq/draws - mMean*mMean; mVar > vrt/n+0.001 {
		t.Errorf("mean rt variance %v too large", mVar)
	}
}
