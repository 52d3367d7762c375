package wei

import (
	"fmt"
	"math/big"
)

// Amount is an amount of native currency denominated in wei.
// The zero value is zero wei and is ready to use.
type Amount struct {
	v *big.Int
}

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

func Zero() Amount {
	return Amount{}
}

func New(wei int64) Amount {
	return Amount{v: big.NewInt(wei)}
}

// FromBig copies v into a new Amount.
func FromBig(v *big.Int) Amount {
	if v == nil {
		return Amount{}
	}
	return Amount{v: new(big.Int).Set(v)}
}

func Ether(n int64) Amount {
	return Amount{v: new(big.Int).Mul(big.NewInt(n), weiPerEther)}
}

// Parse reads a base-10 wei amount.
func Parse(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("invalid wei amount %q", s)
	}
	return Amount{v: v}, nil
}

func (a Amount) big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Big returns a copy of the underlying integer.
func (a Amount) Big() *big.Int {
	return new(big.Int).Set(a.big())
}

func (a Amount) Add(other Amount) Amount {
	return Amount{v: new(big.Int).Add(a.big(), other.big())}
}

func (a Amount) Sub(other Amount) Amount {
	return Amount{v: new(big.Int).Sub(a.big(), other.big())}
}

func (a Amount) Mul(factor int64) Amount {
	return Amount{v: new(big.Int).Mul(a.big(), big.NewInt(factor))}
}

// Div truncates toward zero.
func (a Amount) Div(divisor int64) Amount {
	return Amount{v: new(big.Int).Quo(a.big(), big.NewInt(divisor))}
}

func (a Amount) Cmp(other Amount) int {
	return a.big().Cmp(other.big())
}

func (a Amount) Less(other Amount) bool {
	return a.Cmp(other) < 0
}

func (a Amount) IsZero() bool {
	return a.big().Sign() == 0
}

func (a Amount) IsPositive() bool {
	return a.big().Sign() > 0
}

func (a Amount) IsNegative() bool {
	return a.big().Sign() < 0
}

func (a Amount) DecimalEther() float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(a.big()), new(big.Float).SetInt(weiPerEther)).Float64()
	return f
}

func (a Amount) String() string {
	return a.big().String()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Amount) MarshalBinary() ([]byte, error) {
	b := a.big()
	if b.Sign() < 0 {
		return nil, fmt.Errorf("cannot encode negative wei amount %s", b)
	}
	return b.Bytes(), nil
}

func (a *Amount) UnmarshalBinary(data []byte) error {
	a.v = new(big.Int).SetBytes(data)
	return nil
}
