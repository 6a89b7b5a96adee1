package terrain

import (
	"testing"

	"github.com/Theoffs06/godot-planets/pkg/math"
)

// constantField returns a w x h heightfield where every sample is value.
func constantField(w, h int, value, scale float32) *Heightfield {
	samples := make([]float32, w*h)
	for i := range samples {
		samples[i] = value
	}
	return NewHeightfield(w, h, scale, samples)
}

// rampField returns a field whose sample at (x,y) is x + y*width, scaled
// into [0,1], so every texel is distinguishable.
func rampField(w, h int) *Heightfield {
	samples := make([]float32, w*h)
	for i := range samples {
		samples[i] = float32(i) / float32(w*h-1)
	}
	return NewHeightfield(w, h, 1, samples)
}

func TestHeightAtWrapLaw(t *testing.T) {
	hf := rampField(16, 8)
	for _, v := range []float32{0, 0.3, 0.77, 1} {
		for _, u := range []float32{0, 0.12, 0.5, 0.99} {
			a := hf.HeightAt(u, v)
			b := hf.HeightAt(u+1, v)
			c := hf.HeightAt(u-1, v)
			if a != b || a != c {
				t.Fatalf("wrap law broken at (%v,%v): %v %v %v", u, v, a, b, c)
			}
		}
	}
}

func TestHeightAtClampLaw(t *testing.T) {
	hf := rampField(16, 8)
	for _, u := range []float32{0, 0.4, 0.9} {
		if got, want := hf.HeightAt(u, -0.5), hf.HeightAt(u, 0); got != want {
			t.Errorf("v<0 clamp: got %v, want %v", got, want)
		}
		if got, want := hf.HeightAt(u, 1.5), hf.HeightAt(u, 1); got != want {
			t.Errorf("v>1 clamp: got %v, want %v", got, want)
		}
	}
}

func TestHeightAtScale(t *testing.T) {
	hf := constantField(8, 4, 0.5, 10)
	if got := hf.HeightAt(0.3, 0.3); got != 5 {
		t.Errorf("HeightAt = %v, want 5", got)
	}
}

func TestHeightAtNilField(t *testing.T) {
	var hf *Heightfield
	if got := hf.HeightAt(0.5, 0.5); got != 0 {
		t.Errorf("nil heightfield HeightAt = %v, want 0", got)
	}
	if got := hf.HeightAtLatLong(0, 0); got != 0 {
		t.Errorf("nil heightfield HeightAtLatLong = %v, want 0", got)
	}
}

func TestBilinearExactAtPixelCenters(t *testing.T) {
	const w, h = 16, 8
	hf := rampField(w, h)
	for y := 0; y < h; y++ {
		v := (float32(y) + 0.5) / h
		for x := 0; x < w; x++ {
			u := (float32(x) + 0.5) / w
			lat, long := UVToLatLong(u, v)
			got := hf.HeightAtLatLong(lat, long)
			want := hf.At(x, y)
			if math.Abs(got-want) > 1e-5 {
				t.Fatalf("pixel center (%d,%d): bilinear %v, nearest %v", x, y, got, want)
			}
		}
	}
}

func TestBilinearWrapsAcrossSeam(t *testing.T) {
	const w, h = 8, 4
	samples := make([]float32, w*h)
	// Column 0 is 1.0, the rest 0: querying just left of column 0's center
	// must blend columns w-1 and 0.
	for y := 0; y < h; y++ {
		samples[y*w] = 1
	}
	hf := NewHeightfield(w, h, 1, samples)

	// Halfway between the centers of column w-1 and column 0 (u=0 sits
	// exactly half a texel left of column 0's center).
	lat, long := UVToLatLong(0, 0.5)
	got := hf.HeightAtLatLong(lat, long)
	if math.Abs(got-0.5) > 1e-5 {
		t.Errorf("seam blend = %v, want 0.5", got)
	}
}

func TestBilinearInterpolatesBetweenColumns(t *testing.T) {
	const w, h = 8, 4
	samples := make([]float32, w*h)
	for y := 0; y < h; y++ {
		samples[y*w+1] = 1 // column 1 raised
	}
	hf := NewHeightfield(w, h, 1, samples)

	// Halfway between centers of columns 0 and 1: u = 1/w.
	lat, long := UVToLatLong(1.0/w, 0.5)
	got := hf.HeightAtLatLong(lat, long)
	if math.Abs(got-0.5) > 1e-5 {
		t.Errorf("column blend = %v, want 0.5", got)
	}
}

func TestNormalAtConstantFieldIsRadial(t *testing.T) {
	hf := constantField(64, 32, 0.5, 10)
	for _, uv := range [][2]float32{{0.1, 0.3}, {0.5, 0.5}, {0.8, 0.7}} {
		n := hf.NormalAt(uv[0], uv[1], 50)
		radial := SpherePoint(uv[0], uv[1])
		if n.Dot(radial) < 0.999 {
			t.Errorf("normal at %v = %v, want radial %v", uv, n, radial)
		}
	}
}

func TestNormalAtPoleFallsBack(t *testing.T) {
	hf := constantField(64, 32, 0.5, 10)
	// At the poles the tangent steps collapse to zero length.
	n := hf.NormalAt(0.25, 0, 50)
	want := SpherePoint(0.25, 0)
	if n.Distance(want) > 1e-5 {
		t.Errorf("pole normal = %v, want sphere normal %v", n, want)
	}
	if !n.IsFinite() {
		t.Error("pole normal is not finite")
	}
}

func TestNormalAtNilField(t *testing.T) {
	var hf *Heightfield
	n := hf.NormalAt(0.3, 0.4, 50)
	if n.Distance(SpherePoint(0.3, 0.4)) > 1e-6 {
		t.Errorf("nil heightfield normal = %v, want sphere normal", n)
	}
}

func TestNormalAtUnitLength(t *testing.T) {
	hf := rampField(64, 32)
	for _, uv := range [][2]float32{{0.1, 0.2}, {0.6, 0.5}, {0.95, 0.8}} {
		n := hf.NormalAt(uv[0], uv[1], 50)
		if math.Abs(n.Length()-1) > 1e-4 {
			t.Errorf("normal at %v has length %v", uv, n.Length())
		}
	}
}
