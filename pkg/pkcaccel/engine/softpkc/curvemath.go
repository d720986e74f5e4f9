package softpkc

import "math/big"

// weierstrass is y^2 = x^3 + a*x + b over GF(p) in affine coordinates. The
// arithmetic is variable time; it stands in for the coprocessor and is not a
// hardened implementation.
type weierstrass struct {
	p, a, b *big.Int
}

// affine is a curve point; nil is the point at infinity.
type affine struct {
	x, y *big.Int
}

var (
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

func (c *weierstrass) mod(v *big.Int) *big.Int {
	return v.Mod(v, c.p)
}

func (c *weierstrass) inField(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(c.p) < 0
}

func (c *weierstrass) onCurve(pt *affine) bool {
	if !c.inField(pt.x) || !c.inField(pt.y) {
		return false
	}
	lhs := c.mod(new(big.Int).Mul(pt.y, pt.y))

	rhs := new(big.Int).Mul(pt.x, pt.x)
	rhs.Mul(rhs, pt.x)
	ax := new(big.Int).Mul(c.a, pt.x)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.b)
	c.mod(rhs)

	return lhs.Cmp(rhs) == 0
}

func (c *weierstrass) double(pt *affine) *affine {
	if pt == nil || pt.y.Sign() == 0 {
		return nil
	}
	num := new(big.Int).Mul(pt.x, pt.x)
	num.Mul(num, bigThree)
	num.Add(num, c.a)
	den := new(big.Int).Mul(pt.y, bigTwo)
	den.ModInverse(c.mod(den), c.p)
	lambda := c.mod(num.Mul(num, den))
	return c.finish(lambda, pt.x, pt.x, pt.y)
}

func (c *weierstrass) add(p1, p2 *affine) *affine {
	switch {
	case p1 == nil:
		return p2
	case p2 == nil:
		return p1
	}
	if p1.x.Cmp(p2.x) == 0 {
		if p1.y.Cmp(p2.y) == 0 {
			return c.double(p1)
		}
		return nil
	}
	num := new(big.Int).Sub(p2.y, p1.y)
	den := new(big.Int).Sub(p2.x, p1.x)
	den.ModInverse(c.mod(den), c.p)
	lambda := c.mod(num.Mul(num, den))
	return c.finish(lambda, p1.x, p2.x, p1.y)
}

// finish computes x3 = lambda^2 - x1 - x2 and y3 = lambda*(x1 - x3) - y1.
func (c *weierstrass) finish(lambda, x1, x2, y1 *big.Int) *affine {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	c.mod(x3)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, y1)
	c.mod(y3)

	return &affine{x: x3, y: y3}
}

func (c *weierstrass) scalarMult(k *big.Int, pt *affine) *affine {
	var acc *affine
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = c.double(acc)
		if k.Bit(i) == 1 {
			acc = c.add(acc, pt)
		}
	}
	return acc
}
