package math

// Basis is a right-handed orthonormal frame. X is right, Y is up, Z is back,
// so the frame faces along -Z. Axes are stored explicitly so callers can
// rotate the frame incrementally and renormalize between steps instead of
// rebuilding it from angles.
type Basis struct {
	X, Y, Z Vec3
}

// BasisIdentity returns the world-aligned basis.
func BasisIdentity() Basis {
	return Basis{
		X: Vec3{1, 0, 0},
		Y: Vec3{0, 1, 0},
		Z: Vec3{0, 0, 1},
	}
}

// BasisFromUp builds a basis whose Y axis is the given unit up vector.
// Forward is derived from up x worldRight, or up x worldForward when up is
// nearly parallel to worldRight.
func BasisFromUp(up Vec3) Basis {
	forward := up.Cross(Vec3{1, 0, 0})
	if forward.LengthSq() < 1e-6 {
		forward = up.Cross(Vec3{0, 0, -1})
	}
	forward = forward.Normalize()
	right := forward.Cross(up).Normalize()
	return Basis{X: right, Y: up, Z: forward.Neg()}
}

// Forward returns the facing direction (-Z).
func (b Basis) Forward() Vec3 {
	return b.Z.Neg()
}

// Rotated returns the basis with all three axes rotated about the given
// unit axis by angle radians.
func (b Basis) Rotated(axis Vec3, angle float32) Basis {
	q := QuatFromAxisAngle(axis, angle)
	return Basis{
		X: q.RotateVec3(b.X),
		Y: q.RotateVec3(b.Y),
		Z: q.RotateVec3(b.Z),
	}
}

// Orthonormalized re-orthonormalizes the basis with Y as the primary axis,
// removing numeric drift accumulated by incremental rotations.
func (b Basis) Orthonormalized() Basis {
	y := b.Y.Normalize()
	x := b.X.Sub(y.Scale(b.X.Dot(y))).Normalize()
	z := x.Cross(y)
	return Basis{X: x, Y: y, Z: z}
}

// AlignedY returns the basis rotated so its Y axis moves toward the target
// up vector, by at most maxAngle radians. The rotation axis is perpendicular
// to both; when the axes are anti-parallel the basis X axis is used.
func (b Basis) AlignedY(up Vec3, maxAngle float32) Basis {
	angle := Acos(b.Y.Dot(up))
	if angle < 1e-5 || maxAngle <= 0 {
		return b
	}
	axis := b.Y.Cross(up)
	if axis.LengthSq() < 1e-10 {
		axis = b.X
	} else {
		axis = axis.Normalize()
	}
	if angle > maxAngle {
		angle = maxAngle
	}
	return b.Rotated(axis, angle).Orthonormalized()
}

// IsDegenerate reports whether any axis has collapsed or gone non-finite.
func (b Basis) IsDegenerate() bool {
	const minLenSq = 1e-6
	if !b.X.IsFinite() || !b.Y.IsFinite() || !b.Z.IsFinite() {
		return true
	}
	return b.X.LengthSq() < minLenSq || b.Y.LengthSq() < minLenSq || b.Z.LengthSq() < minLenSq
}
