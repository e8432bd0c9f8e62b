package render

import (
	"math"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

// PointLight is a single point light source: position, intensity, and a
// specular exponent used only by Phong shading.
type PointLight struct {
	Position    math3d.Vec3
	Intensity   float64
	Specularity float64
}

// Ambient is a uniform scalar ambient term, added to whichever of the three
// functions below produced the light's contribution.
type Ambient struct {
	Intensity float64
}

// FlatIntensity computes I·(n̂·L̂) using the face normal and the face
// centroid, for flat shading (one intensity for the whole triangle).
func (l PointLight) FlatIntensity(faceNormal, faceCentroid math3d.Vec3) float64 {
	toLight := l.Position.Sub(faceCentroid).Normalize()
	return l.Intensity * faceNormal.Dot(toLight)
}

// GouraudIntensity computes I·(n̂_v·L̂_v) per vertex.
func (l PointLight) GouraudIntensity(vertexNormal, vertexPos math3d.Vec3) float64 {
	toLight := l.Position.Sub(vertexPos).Normalize()
	return l.Intensity * vertexNormal.Dot(toLight)
}

// PhongIntensity computes the per-pixel diffuse+specular term:
// I·(n·L + (R·V / (|R||V|))^s) when n·L > 0, else 0. viewDir is the
// direction from the shaded point toward the camera (not necessarily
// normalized; the formula normalizes via the |R||V| denominator).
func (l PointLight) PhongIntensity(normal, point, viewDir math3d.Vec3) float64 {
	lightDir := l.Position.Sub(point).Normalize()
	normDotLight := normal.Dot(lightDir)
	if normDotLight <= 0 {
		return 0
	}

	reflection := normal.Scale(2 * normDotLight).Sub(lightDir)
	denom := math.Sqrt(reflection.LenSq() * viewDir.LenSq())
	if denom == 0 {
		return l.Intensity * normDotLight
	}
	specCos := reflection.Dot(viewDir) / denom
	return l.Intensity * (normDotLight + math.Pow(specCos, l.Specularity))
}

// Shade combines an ambient term with a light contribution and scales the
// base color by the result, clamping each channel to [0,255]. No gamma is
// applied here (see GreyscaleFromDepth in color.go for the one place gamma
// correction is used, a debug visualization unrelated to main shading).
func Shade(base Color, ambient Ambient, lightContribution float64) Color {
	return Scale(base, ambient.Intensity+lightContribution)
}
