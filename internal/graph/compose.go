package graph

import "math/big"

// Compose multiplies the factors of every step of p into one exact factor.
// The empty path composes to 1.
func Compose(p Path) *big.Rat {
	res := big.NewRat(1, 1)
	for _, s := range p {
		res.Mul(res, s.Factor())
	}

	return res
}
