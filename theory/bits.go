package theory

import (
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/graphsat/core"
)

// Range returns the smallest and largest value w can still take under r:
// unknown bits count as 0 for lo and as 1 for hi.
func Range(w core.Weight, r Reader) (lo, hi int64) {
	if !w.Symbolic() {
		return w.Const, w.Const
	}
	for i, b := range w.Bits {
		switch r.Value(b) {
		case True:
			lo |= 1 << uint(i)
			hi |= 1 << uint(i)
		case Unknown:
			hi |= 1 << uint(i)
		}
	}
	return lo, hi
}

// Lower returns the lower end of Range.
func Lower(w core.Weight, r Reader) int64 {
	lo, _ := Range(w, r)
	return lo
}

// Upper returns the upper end of Range.
func Upper(w core.Weight, r Reader) int64 {
	_, hi := Range(w, r)
	return hi
}

// OneBits appends to dst the bits of w assigned true. They are the reason the
// lower end of Range cannot drop.
func OneBits(dst []z.Lit, w core.Weight, r Reader) []z.Lit {
	for _, b := range w.Bits {
		if r.Value(b) == True {
			dst = append(dst, b)
		}
	}
	return dst
}

// ZeroBits appends to dst the negations of the bits of w assigned false. They
// are the reason the upper end of Range cannot rise.
func ZeroBits(dst []z.Lit, w core.Weight, r Reader) []z.Lit {
	for _, b := range w.Bits {
		if r.Value(b) == False {
			dst = append(dst, b.Not())
		}
	}
	return dst
}
