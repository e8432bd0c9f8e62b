package render

import (
	"testing"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

func TestPhongIntensityZeroWhenFacingAway(t *testing.T) {
	l := PointLight{Position: math3d.V3(0, 10, 0), Intensity: 1, Specularity: 10}
	normal := math3d.V3(0, -1, 0) // facing away from the light
	got := l.PhongIntensity(normal, math3d.Zero3(), math3d.V3(0, 1, 0))
	if got != 0 {
		t.Errorf("PhongIntensity facing away = %v, want 0", got)
	}
}

func TestPhongIntensityPositiveWhenFacingLight(t *testing.T) {
	l := PointLight{Position: math3d.V3(0, 10, 0), Intensity: 1, Specularity: 10}
	normal := math3d.V3(0, 1, 0)
	got := l.PhongIntensity(normal, math3d.Zero3(), math3d.V3(0, 1, 0))
	if got <= 0 {
		t.Errorf("PhongIntensity facing light = %v, want > 0", got)
	}
}

func TestFlatIntensityMatchesGouraudAtSamePoint(t *testing.T) {
	l := PointLight{Position: math3d.V3(-4, 10, 8), Intensity: 0.8}
	normal := math3d.V3(0, 1, 0)
	point := math3d.V3(0, 0, 12)
	flat := l.FlatIntensity(normal, point)
	gouraud := l.GouraudIntensity(normal, point)
	if flat != gouraud {
		t.Errorf("flat and gouraud intensity should agree at an identical normal/point pair: %v vs %v", flat, gouraud)
	}
}

func TestShadeClampsChannels(t *testing.T) {
	c := Shade(ColorWhite, Ambient{Intensity: 0.2}, 5.0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("Shade with high intensity = %v, want clamped to 255", c)
	}
}
