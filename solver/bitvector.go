package solver

import (
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/katalvlaran/graphsat/core"
)

// MaxWidth is the widest bit-vector; every value fits an int64 with room
// for sums.
const MaxWidth = 62

// BitVector is an unsigned integer over literals, least significant bit
// first. A constant vector has constant literals and a known value.
type BitVector struct {
	s     *Solver
	bits  []z.Lit
	konst bool
	value int64
}

// NewBitVector returns a vector of width fresh bit literals.
func (s *Solver) NewBitVector(width int) (*BitVector, error) {
	if width < 1 || width > MaxWidth {
		return nil, errors.Wrapf(ErrBadWidth, "width %d", width)
	}
	bits := make([]z.Lit, width)
	for i := range bits {
		bits[i] = s.c.Lit()
	}

	return &BitVector{s: s, bits: bits}, nil
}

// ConstBitVector returns a vector fixed to value.
func (s *Solver) ConstBitVector(width int, value int64) (*BitVector, error) {
	if width < 1 || width > MaxWidth {
		return nil, errors.Wrapf(ErrBadWidth, "width %d", width)
	}
	if value < 0 || value > maxUnsigned(width) {
		return nil, errors.Wrapf(ErrValueOutOfRange, "%d in %d bits", value, width)
	}
	bits := make([]z.Lit, width)
	for i := range bits {
		bits[i] = s.c.F
		if value>>uint(i)&1 == 1 {
			bits[i] = s.c.T
		}
	}

	return &BitVector{s: s, bits: bits, konst: true, value: value}, nil
}

// Width returns the number of bits.
func (bv *BitVector) Width() int { return len(bv.bits) }

// Bits returns a copy of the bit literals, LSB first.
func (bv *BitVector) Bits() []z.Lit { return append([]z.Lit(nil), bv.bits...) }

// Const returns the value of a constant vector.
func (bv *BitVector) Const() (int64, bool) { return bv.value, bv.konst }

// Max returns the largest representable value.
func (bv *BitVector) Max() int64 { return maxUnsigned(len(bv.bits)) }

// Gt returns a literal for bv > k.
//
// The circuit is built from the least significant bit up: after bit i,
// gt holds iff bv[0..i] > k[0..i].
func (bv *BitVector) Gt(k int64) z.Lit {
	c := bv.s.c
	switch {
	case k < 0:
		return c.T
	case k >= bv.Max():
		return c.F
	}
	gt := c.F
	for i, b := range bv.bits {
		if k>>uint(i)&1 == 1 {
			gt = c.And(b, gt)
		} else {
			gt = c.Or(b, gt)
		}
	}
	return gt
}

// Geq returns a literal for bv ≥ k.
func (bv *BitVector) Geq(k int64) z.Lit {
	if k <= 0 {
		return bv.s.c.T
	}
	return bv.Gt(k - 1)
}

// Lt returns a literal for bv < k.
func (bv *BitVector) Lt(k int64) z.Lit { return bv.Geq(k).Not() }

// Leq returns a literal for bv ≤ k.
func (bv *BitVector) Leq(k int64) z.Lit { return bv.Gt(k).Not() }

// Eq returns a literal for bv = k.
func (bv *BitVector) Eq(k int64) z.Lit {
	c := bv.s.c
	if k < 0 || k > bv.Max() {
		return c.F
	}
	ms := make([]z.Lit, len(bv.bits))
	for i, b := range bv.bits {
		ms[i] = b.Not()
		if k>>uint(i)&1 == 1 {
			ms[i] = b
		}
	}
	return c.Ands(ms...)
}

// Value returns the vector's value in the last model.
func (bv *BitVector) Value() (int64, error) {
	if bv.konst {
		return bv.value, nil
	}
	if !bv.s.HasModel() {
		return 0, ErrNoModel
	}
	var v int64
	for i, b := range bv.bits {
		if bv.s.Value(b) {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// weight converts bv into an edge weight or comparison bound.
func (bv *BitVector) weight() core.Weight {
	if bv.konst {
		return core.ConstWeight(bv.value)
	}
	return core.SymbolicWeight(bv.bits)
}

// key identifies bv inside atom keys.
func (bv *BitVector) key() string {
	if bv.konst {
		return "c" + itoa(bv.value)
	}
	return "v" + itoa(int64(bv.bits[0].Var())) + "w" + itoa(int64(len(bv.bits)))
}

func (s *Solver) own(bv *BitVector) error {
	if bv == nil || bv.s != s {
		return ErrForeignBitVector
	}
	return nil
}

func maxUnsigned(width int) int64 { return int64(1)<<uint(width) - 1 }
