package bars

import (
	"math"
	"testing"

	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/scale"
)

var keys = dataset.Keys{XKey: "x", YKey: "y"}

func series(values ...any) dataset.Dataset {
	ds := make(dataset.Dataset, len(values))
	for i, v := range values {
		ds[i] = dataset.Record{"x": i, "y": v}
	}
	return ds
}

func TestBuild(t *testing.T) {
	ds := series(10, 20, 5, -4)
	s := scale.Compute(ds, keys, 300, 900, 50, scale.Bucketed)
	got := Build(ds, keys, s, Options{Width: 20})

	// PixelGap = 200/3, ValueGap = 20/3, so 10px per unit.
	want := []struct {
		center, left, top, height float64
	}{
		{150, 140, 150, 100},
		{350, 340, 50, 200},
		{550, 540, 200, 50},
		{750, 740, 250, 0},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		b := got[i]
		if b.Index != i {
			t.Errorf("bar %d Index = %d", i, b.Index)
		}
		if !near(b.CenterX, w.center) || !near(b.Left, w.left) || !near(b.Top, w.top) || !near(b.Height, w.height) {
			t.Errorf("bar %d = %+v, want center=%v left=%v top=%v height=%v",
				i, b, w.center, w.left, w.top, w.height)
		}
		if !near(b.Bottom(), 250) {
			t.Errorf("bar %d Bottom() = %v, want baseline 250", i, b.Bottom())
		}
		if b.Edges != nil {
			t.Errorf("bar %d has 3D edges without ThreeD", i)
		}
	}
}

func TestCentersStrictlyIncrease(t *testing.T) {
	for n := 2; n <= 20; n++ {
		vals := make([]any, n)
		for i := range vals {
			vals[i] = n - i
		}
		ds := series(vals...)
		s := scale.Compute(ds, keys, 300, 700, 50, scale.Bucketed)
		bs := Build(ds, keys, s, Options{Width: 20})
		for i := 1; i < n; i++ {
			if bs[i].CenterX <= bs[i-1].CenterX {
				t.Fatalf("n=%d: center %d (%v) <= center %d (%v)", n, i, bs[i].CenterX, i-1, bs[i-1].CenterX)
			}
		}
	}
}

func TestWireframe(t *testing.T) {
	ds := series(0, 10)
	s := scale.Compute(ds, keys, 300, 500, 50, scale.Bucketed)
	bs := Build(ds, keys, s, Options{Width: 20, ThreeD: true, Depth: 10})

	b := bs[1] // center 350, top 50, bottom 250
	want := []Edge{
		{340, 250, 330, 240},
		{340, 50, 330, 40},
		{330, 240, 330, 40},
		{330, 40, 350, 40},
		{360, 50, 350, 40},
	}
	if len(b.Edges) != len(want) {
		t.Fatalf("edges = %d, want %d", len(b.Edges), len(want))
	}
	for i, e := range want {
		if b.Edges[i] != e {
			t.Errorf("edge %d = %+v, want %+v", i, b.Edges[i], e)
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	tests := []struct {
		name string
		ds   dataset.Dataset
	}{
		{"empty", series()},
		{"single", series(12)},
		{"non numeric", series("n/a", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scale.Compute(tt.ds, keys, 300, 800, 50, scale.Bucketed)
			bs := Build(tt.ds, keys, s, Options{Width: 20, ThreeD: true, Depth: 10})
			if len(bs) != len(tt.ds) {
				t.Fatalf("len = %d, want %d", len(bs), len(tt.ds))
			}
			for _, b := range bs {
				for _, v := range []float64{b.CenterX, b.Left, b.Top, b.Height} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("bar %+v has non-finite geometry", b)
					}
				}
				if b.Height != 0 {
					t.Errorf("degenerate bar height = %v, want 0", b.Height)
				}
			}
		})
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
