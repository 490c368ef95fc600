package polycube

// Uint128 is a 128-bit unsigned integer built from two 64-bit halves,
// just wide enough to hold a canonical encoding of up to 21 cubes at
// 6 bits each (126 bits). It is comparable so it can be used directly
// as a map key (the enumerator's per-step tried-canonicals set).
type Uint128 struct {
	Hi, Lo uint64
}

// Shl6Or shifts u left by 6 bits and ORs in the low 6 bits of v. This
// is the single operation the canonicalizer's traversal performs once
// per visited cube: append the next 6-bit mask value into the next
// slot of the accumulator.
func (u Uint128) Shl6Or(v uint8) Uint128 {
	carry := u.Lo >> 58
	return Uint128{
		Hi: (u.Hi << 6) | carry,
		Lo: (u.Lo << 6) | uint64(v&0x3f),
	}
}

// Shr returns u right-shifted by n bits (0 <= n, result is zero once
// n >= 128).
func (u Uint128) Shr(n int) Uint128 {
	switch {
	case n <= 0:
		return u
	case n >= 128:
		return Uint128{}
	case n < 64:
		return Uint128{
			Hi: u.Hi >> uint(n),
			Lo: (u.Lo >> uint(n)) | (u.Hi << uint(64-n)),
		}
	default:
		return Uint128{Lo: u.Hi >> uint(n-64)}
	}
}

// Less reports whether u < v.
func (u Uint128) Less(v Uint128) bool {
	if u.Hi != v.Hi {
		return u.Hi < v.Hi
	}
	return u.Lo < v.Lo
}

// Greater reports whether u > v.
func (u Uint128) Greater(v Uint128) bool {
	return v.Less(u)
}
