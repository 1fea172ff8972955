package render

import (
	"reddust/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

// ClippedLine is the visible part of a segment after near plane clipping
type ClippedLine struct {
	P1, P2   mgl64.Vec3
	UV1, UV2 mgl64.Vec2
}

// ClipLineToNearPlane clips the camera-space segment p1-p2 against z = near.
// Texture coordinates are optional; when both are given the crossing point gets an
// interpolated coordinate. It returns false when the whole segment is behind the plane.
func ClipLineToNearPlane(p1, p2 mgl64.Vec3, near float64, uv1, uv2 *mgl64.Vec2) (ClippedLine, bool) {
	var t1, t2 mgl64.Vec2
	if uv1 != nil {
		t1 = *uv1
	}
	if uv2 != nil {
		t2 = *uv2
	}

	front1 := p1.Z() > near
	front2 := p2.Z() > near

	switch {
	case front1 && front2:
		return ClippedLine{P1: p1, P2: p2, UV1: t1, UV2: t2}, true
	case !front1 && !front2:
		return ClippedLine{}, false
	}

	t := (near - p1.Z()) / (p2.Z() - p1.Z())
	crossing := crossNearPlane(p1, p2, t, near)
	uv := lerpUV(t1, t2, t)

	if front1 {
		return ClippedLine{P1: p1, P2: crossing, UV1: t1, UV2: uv}, true
	}
	return ClippedLine{P1: crossing, P2: p2, UV1: uv, UV2: t2}, true
}

// ClipPolygonToNearPlane clips a camera-space polygon loop against z = near.
// uvs is either nil or parallel to vertices; the returned slices are always parallel.
// Fewer than three returned vertices means nothing is visible.
func ClipPolygonToNearPlane(vertices []mgl64.Vec3, uvs []mgl64.Vec2, near float64) ([]mgl64.Vec3, []mgl64.Vec2) {
	n := len(vertices)
	if n == 0 {
		return nil, nil
	}
	uvAt := func(i int) mgl64.Vec2 {
		if i < len(uvs) {
			return uvs[i]
		}
		return mgl64.Vec2{}
	}

	outVerts := make([]mgl64.Vec3, 0, n+1)
	outUVs := make([]mgl64.Vec2, 0, n+1)

	for i := 0; i < n; i++ {
		cur, next := vertices[i], vertices[(i+1)%n]
		curUV, nextUV := uvAt(i), uvAt((i+1)%n)
		curFront := cur.Z() > near
		nextFront := next.Z() > near

		if curFront {
			outVerts = append(outVerts, cur)
			outUVs = append(outUVs, curUV)
		}
		if curFront != nextFront {
			t := (near - cur.Z()) / (next.Z() - cur.Z())
			outVerts = append(outVerts, crossNearPlane(cur, next, t, near))
			outUVs = append(outUVs, lerpUV(curUV, nextUV, t))
		}
	}
	return outVerts, outUVs
}

// crossNearPlane interpolates a point on a--b and pins its depth to the plane exactly
func crossNearPlane(a, b mgl64.Vec3, t, near float64) mgl64.Vec3 {
	return mgl64.Vec3{
		mathutil.Lerp(a.X(), b.X(), t),
		mathutil.Lerp(a.Y(), b.Y(), t),
		near,
	}
}

// lerpUV interpolates texture coordinates. A component that is equal at both ends
// (an edge running along u or v) is copied so edges pinned at 0 or 1 stay exact.
func lerpUV(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	u, v := a.X(), a.Y()
	if a.X() != b.X() {
		u = mathutil.Lerp(a.X(), b.X(), t)
	}
	if a.Y() != b.Y() {
		v = mathutil.Lerp(a.Y(), b.Y(), t)
	}
	return mgl64.Vec2{u, v}
}
