// Package coins implements the compact, lazily-decoded encoding of a
// transaction's unspent-output set used by a chain-state database: spent
// outputs cost nothing to store, and reading any single output never
// requires decoding its siblings. Uses typed sentinel errors and a
// pkg/errors-wrapped Decode boundary; the wire layout itself is specific
// to this codec.
package coins

import (
	"github.com/pkg/errors"

	"github.com/massconsensus/btccore/wire"
)

// Output is a single decoded unspent transaction output.
type Output struct {
	Value    int64
	PkScript []byte
}

// errInvalidCompressionPrefix is returned when a stored script-compression
// prefix byte isn't one of the four the codec defines.
var errInvalidCompressionPrefix = errors.New("coins: invalid script compression prefix")

// ErrFullySpent is returned by Decode when handed a zero-length buffer: the
// wire encoding of a coin entry with no remaining unspent outputs, which
// callers are expected to have deleted rather than stored.
var ErrFullySpent = errors.New("coins: entry is fully spent")

// entry is one unspent output's slot in a Coins value: either already
// decoded, or a reference to its still-undecoded source bytes.
type entry struct {
	decoded *Output
	raw     []byte
}

// Coins is a lazily-decoded view of one transaction's unspent outputs.
// Outputs are decoded on first access via Output and then cached; entries
// never touched by a caller are re-serialized verbatim from their source
// bytes by Encode. Txid is never part of the wire encoding itself -- it
// identifies which transaction the outputs belong to, the same way it's
// threaded through Decode/ParseOutput rather than read back out of bytes.
type Coins struct {
	Version    uint64
	Txid       wire.Hash
	Height     int64 // -1 denotes "unconfirmed"
	IsCoinBase bool

	spent   []byte // bit-packed spent field, bit 7 of byte 0 = output 0
	entries []*entry
}

// NewCoins builds a Coins value from a fully-decoded output set; outputs[i]
// == nil marks output i as spent. Used when writing a freshly-validated
// transaction's outputs to storage for the first time.
func NewCoins(txid wire.Hash, version uint64, height int64, isCoinBase bool, outputs []*Output) *Coins {
	c := &Coins{Version: version, Txid: txid, Height: height, IsCoinBase: isCoinBase}

	last := -1
	for i, o := range outputs {
		if o != nil {
			last = i
		}
	}
	if last < 0 {
		return c
	}

	s := last + 1
	c.spent = make([]byte, (s+7)/8)
	c.entries = make([]*entry, s)
	for i := 0; i < s; i++ {
		if outputs[i] == nil {
			c.markSpent(i)
		} else {
			c.entries[i] = &entry{decoded: outputs[i]}
		}
	}
	// The spent field is byte-aligned but s may not be: mark the trailing
	// padding bits beyond index s-1 spent, so a decoder scanning whole bytes
	// doesn't mistake zero-initialized padding for an unspent output with no
	// data behind it.
	for i := s; i < len(c.spent)*8; i++ {
		c.markSpent(i)
	}
	return c
}

func (c *Coins) markSpent(index int) {
	c.spent[index/8] |= 1 << uint(7-index%8)
}

// IsSpent reports whether index is spent, or out of the recorded range
// (equivalent to spent, since trailing spent outputs are never stored).
func (c *Coins) IsSpent(index int) bool {
	if index < 0 || index >= len(c.entries) {
		return true
	}
	return c.spent[index/8]&(1<<uint(7-index%8)) != 0
}

// NumSlots returns one plus the index of the last unspent output this Coins
// value was built or decoded with, i.e. the span the spent bitfield covers.
func (c *Coins) NumSlots() int {
	return len(c.entries)
}

// Output returns output index's value and script, decoding it from its
// source bytes on first access. It returns ok=false if index is spent or
// out of range.
func (c *Coins) Output(index int) (*Output, bool, error) {
	if c.IsSpent(index) {
		return nil, false, nil
	}
	e := c.entries[index]
	if e.decoded != nil {
		return e.decoded, true, nil
	}
	out, err := decodeOutput(e.raw)
	if err != nil {
		return nil, false, errors.Wrapf(err, "coins: decoding output %d", index)
	}
	e.decoded = out
	return out, true, nil
}

// Spend marks index spent, discarding any decoded or raw bytes for it.
func (c *Coins) Spend(index int) {
	if index < 0 || index >= len(c.entries) || c.IsSpent(index) {
		return
	}
	c.markSpent(index)
	c.entries[index] = nil
}

// IsFullySpent reports whether every output this Coins value covers has
// been spent, meaning its storage key should be deleted rather than
// rewritten.
func (c *Coins) IsFullySpent() bool {
	for i := range c.entries {
		if !c.IsSpent(i) {
			return false
		}
	}
	return true
}
