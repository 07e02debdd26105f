package geo

import (
	"errors"
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// TRIANGLE GEOMETRY
// All functions operate on planar (projected) coordinates in metres and are
// pure: they never mutate their inputs. Collinear vertex triples produce a
// signed area near zero; callers reject those through the sharp-angle
// filter, which a collinear triangle always trips.

// ErrInvalidCoordinates is returned when a geographic fix is outside the
// valid longitude/latitude range.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// SignedArea computes half the determinant of the homogeneous vertex
// matrix. Positive for counter-clockwise winding, negative for clockwise,
// near zero for collinear vertices.
func SignedArea(p1, p2, p3 geom.XY) float64 {
	return ((p2.X-p1.X)*(p3.Y-p1.Y) - (p3.X-p1.X)*(p2.Y-p1.Y)) / 2
}

// IsPositivelyOriented reports whether the vertices wind counter-clockwise.
func IsPositivelyOriented(p1, p2, p3 geom.XY) bool {
	return SignedArea(p1, p2, p3) > 0
}

// InteriorAngles returns the triangle's interior angles in degrees, one per
// vertex in input order. Each angle comes from the clamped dot product of
// the two normalized edge vectors meeting at that vertex.
func InteriorAngles(p1, p2, p3 geom.XY) (a1, a2, a3 float64) {
	a1 = vertexAngle(p1, p2, p3)
	a2 = vertexAngle(p2, p3, p1)
	a3 = vertexAngle(p3, p1, p2)
	return a1, a2, a3
}

// HasSharpAngle reports whether any interior angle falls below
// thresholdDeg degrees.
func HasSharpAngle(p1, p2, p3 geom.XY, thresholdDeg float64) bool {
	a1, a2, a3 := InteriorAngles(p1, p2, p3)
	return math.Min(a1, math.Min(a2, a3)) < thresholdDeg
}

// vertexAngle computes the interior angle at vertex v between edges v->a
// and v->b, in degrees.
func vertexAngle(v, a, b geom.XY) float64 {
	ea := a.Sub(v)
	eb := b.Sub(v)
	na := math.Hypot(ea.X, ea.Y)
	nb := math.Hypot(eb.X, eb.Y)
	if na == 0 || nb == 0 {
		// Coincident vertices degenerate to a zero angle, which the
		// sharp-angle filter rejects.
		return 0
	}
	cos := (ea.X*eb.X + ea.Y*eb.Y) / (na * nb)
	// acos overshoots outside [-1, 1] from floating-point error.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// VelocityComponents converts a scalar drift speed and bearing into planar
// velocity components. Bearing is degrees clockwise from north, so 0 deg is
// +y and 90 deg is +x: u = speed*sin(bearing), v = speed*cos(bearing).
func VelocityComponents(speed, bearingDeg float64) (u, v float64) {
	rad := bearingDeg * math.Pi / 180
	return speed * math.Sin(rad), speed * math.Cos(rad)
}

// PlanarFromGeographic projects a longitude/latitude fix (EPSG:4326) onto
// the planar working CRS (EPSG:3857), metres.
func PlanarFromGeographic(lon, lat float64) (geom.XY, error) {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return geom.XY{}, ErrInvalidCoordinates
	}
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(lon, lat, 0)
	return geom.XY{X: x, Y: y}, nil
}

// TriangleRing builds the closed boundary of a triangle as a LineString,
// for WKT export to presentation layers.
func TriangleRing(p1, p2, p3 geom.XY) (geom.LineString, error) {
	seq := geom.NewSequence([]float64{
		p1.X, p1.Y,
		p2.X, p2.Y,
		p3.X, p3.Y,
		p1.X, p1.Y,
	}, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("failed to build triangle ring: %w", err)
	}
	return ls, nil
}
