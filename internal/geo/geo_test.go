package geo

import (
	"errors"
	"math"
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
)

func TestSignedArea_PositiveForCounterClockwise(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 1000, Y: 0}
	p3 := geom.XY{X: 0, Y: 1000}

	area := SignedArea(p1, p2, p3)
	if area != 500000 {
		t.Errorf("expected area=500000, got %f", area)
	}
}

func TestSignedArea_AntisymmetricUnderVertexSwap(t *testing.T) {
	p1 := geom.XY{X: 12, Y: -7}
	p2 := geom.XY{X: 340, Y: 95}
	p3 := geom.XY{X: -50, Y: 210}

	forward := SignedArea(p1, p2, p3)
	swapped := SignedArea(p1, p3, p2)
	if forward != -swapped {
		t.Errorf("expected antisymmetry, got %f and %f", forward, swapped)
	}
}

func TestSignedArea_ZeroForCollinearPoints(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 500, Y: 500}
	p3 := geom.XY{X: 1500, Y: 1500}

	area := SignedArea(p1, p2, p3)
	if area != 0 {
		t.Errorf("expected area=0 for collinear points, got %f", area)
	}
}

func TestIsPositivelyOriented(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 1, Y: 0}
	p3 := geom.XY{X: 0, Y: 1}

	if !IsPositivelyOriented(p1, p2, p3) {
		t.Error("expected counter-clockwise triangle to be positively oriented")
	}
	if IsPositivelyOriented(p1, p3, p2) {
		t.Error("expected clockwise triangle to not be positively oriented")
	}
}

func TestInteriorAngles_RightIsoceles(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 1000, Y: 0}
	p3 := geom.XY{X: 0, Y: 1000}

	a1, a2, a3 := InteriorAngles(p1, p2, p3)
	if math.Abs(a1-90) > 1e-9 {
		t.Errorf("expected a1=90, got %f", a1)
	}
	if math.Abs(a2-45) > 1e-9 {
		t.Errorf("expected a2=45, got %f", a2)
	}
	if math.Abs(a3-45) > 1e-9 {
		t.Errorf("expected a3=45, got %f", a3)
	}
}

func TestInteriorAngles_SumTo180(t *testing.T) {
	p1 := geom.XY{X: 13.5, Y: -220}
	p2 := geom.XY{X: 980, Y: 45}
	p3 := geom.XY{X: 310, Y: 770}

	a1, a2, a3 := InteriorAngles(p1, p2, p3)
	sum := a1 + a2 + a3
	if math.Abs(sum-180) > 1e-9 {
		t.Errorf("expected angle sum=180, got %f", sum)
	}
}

func TestInteriorAngles_NearCollinearHasNearZeroAngle(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 1000, Y: 0}
	p3 := geom.XY{X: 2000, Y: 1}

	a1, a2, a3 := InteriorAngles(p1, p2, p3)
	minAngle := math.Min(a1, math.Min(a2, a3))
	if minAngle > 0.1 {
		t.Errorf("expected a near-zero angle, got min=%f", minAngle)
	}
}

func TestHasSharpAngle(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 1000, Y: 0}
	p3 := geom.XY{X: 0, Y: 1000}

	if HasSharpAngle(p1, p2, p3, 15) {
		t.Error("right isoceles triangle should pass a 15 degree threshold")
	}
	if !HasSharpAngle(p1, p2, p3, 50) {
		t.Error("45 degree angles should trip a 50 degree threshold")
	}

	// Long sliver: min angle well under 15 degrees.
	sliver := geom.XY{X: 2000, Y: 50}
	if !HasSharpAngle(p1, p2, sliver, 15) {
		t.Error("sliver triangle should trip the 15 degree threshold")
	}
}

func TestHasSharpAngle_CollinearAlwaysSharp(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 100, Y: 100}
	p3 := geom.XY{X: 300, Y: 300}

	if !HasSharpAngle(p1, p2, p3, 15) {
		t.Error("collinear points must always register a sharp angle")
	}
}

func TestVelocityComponents_CardinalBearings(t *testing.T) {
	u, v := VelocityComponents(2.0, 0)
	if math.Abs(u) > 1e-12 || math.Abs(v-2.0) > 1e-12 {
		t.Errorf("bearing 0 (north): expected (0, 2), got (%f, %f)", u, v)
	}

	u, v = VelocityComponents(2.0, 90)
	if math.Abs(u-2.0) > 1e-12 || math.Abs(v) > 1e-12 {
		t.Errorf("bearing 90 (east): expected (2, 0), got (%f, %f)", u, v)
	}

	u, v = VelocityComponents(2.0, 180)
	if math.Abs(u) > 1e-12 || math.Abs(v+2.0) > 1e-12 {
		t.Errorf("bearing 180 (south): expected (0, -2), got (%f, %f)", u, v)
	}

	u, v = VelocityComponents(2.0, 270)
	if math.Abs(u+2.0) > 1e-12 || math.Abs(v) > 1e-12 {
		t.Errorf("bearing 270 (west): expected (-2, 0), got (%f, %f)", u, v)
	}
}

func TestPlanarFromGeographic_Origin(t *testing.T) {
	p, err := PlanarFromGeographic(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.X != 0 {
		t.Errorf("expected X=0 at origin, got %f", p.X)
	}
	if p.Y != 0 {
		t.Errorf("expected Y=0 at origin, got %f", p.Y)
	}
}

func TestPlanarFromGeographic_NorthernHemisphere(t *testing.T) {
	p, err := PlanarFromGeographic(15, 78)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.X <= 0 {
		t.Errorf("expected positive X for eastern longitude, got %f", p.X)
	}
	if p.Y <= 0 {
		t.Errorf("expected positive Y for northern latitude, got %f", p.Y)
	}
}

func TestPlanarFromGeographic_InvalidLatitude(t *testing.T) {
	_, err := PlanarFromGeographic(0, 91)
	if err == nil {
		t.Fatal("expected error for latitude beyond 90")
	}
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestPlanarFromGeographic_InvalidLongitude(t *testing.T) {
	_, err := PlanarFromGeographic(-181, 0)
	if err == nil {
		t.Fatal("expected error for longitude beyond -180")
	}
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestTriangleRing_Closed(t *testing.T) {
	p1 := geom.XY{X: 0, Y: 0}
	p2 := geom.XY{X: 1000, Y: 0}
	p3 := geom.XY{X: 0, Y: 1000}

	ring, err := TriangleRing(p1, p2, p3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq := ring.Coordinates()
	if seq.Length() != 4 {
		t.Fatalf("expected 4 points in closed ring, got %d", seq.Length())
	}
	first := seq.GetXY(0)
	last := seq.GetXY(3)
	if first != last {
		t.Errorf("expected ring closure, got first=%v last=%v", first, last)
	}
}
