package coins

import "github.com/shopspring/decimal"

// satoshisPerBTC is the fixed-point scale between a raw Output value and
// its human-readable BTC denomination.
var satoshisPerBTC = decimal.New(1, 8)

// Amount wraps a raw satoshi value for display, keeping the conversion to
// decimal BTC out of the hot coin-encoding path where values stay int64.
type Amount int64

// ToBTC returns a as a decimal.Decimal denominated in BTC.
func (a Amount) ToBTC() decimal.Decimal {
	return decimal.New(int64(a), 0).Div(satoshisPerBTC)
}

// String formats a as a fixed-point BTC amount, e.g. "0.00000001".
func (a Amount) String() string {
	return a.ToBTC().StringFixed(8)
}
