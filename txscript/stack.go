package txscript

import (
	"fmt"
	"strings"
)

// stack is an ordered sequence of byte vectors, indexed from the top (index
// 0 is the last element pushed). It backs both the interpreter's
// data stack and its alt stack.
type stack struct {
	stk               [][]byte
	verifyMinimalData bool
}

// Depth returns the number of elements on the stack.
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

// nipN removes the item nIndex items from the top.
func (s *stack) nipN(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx > sz-1 {
		return nil, scriptError(ErrInvalidStackOperation, fmt.Sprintf(
			"index %d is invalid for stack size %d", idx, sz))
	}
	item := s.stk[sz-idx-1]
	s.stk = append(s.stk[:sz-idx-1], s.stk[sz-idx:]...)
	return item, nil
}

// PopByteArray pops the top item off the stack.
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PopInt pops the top item and interprets it as a 4-byte scriptNum.
func (s *stack) PopInt() (scriptNum, error) {
	b, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return makeScriptNum(b, s.verifyMinimalData, defaultScriptNumLen)
}

// PopBool pops the top item and interprets it by Script's truthiness rule:
// any nonzero byte, except a lone sign bit as the final byte, is true.
func (s *stack) PopBool() (bool, error) {
	b, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return asBool(b), nil
}

func asBool(b []byte) bool {
	for i := range b {
		if b[i] != 0 {
			if i == len(b)-1 && b[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}

// PushByteArray pushes b onto the stack.
func (s *stack) PushByteArray(b []byte) {
	s.stk = append(s.stk, b)
}

// PushInt pushes n's minimal encoding onto the stack.
func (s *stack) PushInt(n scriptNum) {
	s.PushByteArray(n.Bytes())
}

// PushBool pushes the canonical truth encoding of v onto the stack.
func (s *stack) PushBool(v bool) {
	s.PushByteArray(fromBool(v))
}

// PeekByteArray returns a reference to the idx'th item from the top without
// removing it.
func (s *stack) PeekByteArray(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx > sz-1 {
		return nil, scriptError(ErrInvalidStackOperation, fmt.Sprintf(
			"index %d is invalid for stack size %d", idx, sz))
	}
	return s.stk[sz-idx-1], nil
}

// PeekInt returns the idx'th item from the top as a scriptNum.
func (s *stack) PeekInt(idx int32) (scriptNum, error) {
	b, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(b, s.verifyMinimalData, defaultScriptNumLen)
}

// PeekLockTime returns the top item as a scriptNum using the wider 5-byte
// range OP_CHECKLOCKTIMEVERIFY and OP_CHECKSEQUENCEVERIFY allow, without
// popping it -- both opcodes leave their argument on the stack.
func (s *stack) PeekLockTime() (scriptNum, error) {
	b, err := s.PeekByteArray(0)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(b, s.verifyMinimalData, 5)
}

// PeekBool returns the idx'th item from the top as a bool.
func (s *stack) PeekBool(idx int32) (bool, error) {
	b, err := s.PeekByteArray(idx)
	if err != nil {
		return false, err
	}
	return asBool(b), nil
}

// DropN removes the top n items from the stack.
func (s *stack) DropN(n int32) error {
	return s.forN(n, func(idx int32) error {
		_, err := s.nipN(0)
		return err
	})
}

// DupN duplicates the top n items, preserving order.
func (s *stack) DupN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	return s.forN(n, func(idx int32) error {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
		return nil
	})
}

// RotN rotates the top 3n items down n positions.
func (s *stack) RotN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	entry := 3*n - 1
	return s.forN(n, func(idx int32) error {
		nth, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(nth)
		return nil
	})
}

// SwapN swaps the top n items with the n items below them.
func (s *stack) SwapN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	entry := 2*n - 1
	return s.forN(n, func(idx int32) error {
		nth, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(nth)
		return nil
	})
}

// OverN duplicates the n items that are n items below the top.
func (s *stack) OverN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	entry := 2*n - 1
	return s.forN(n, func(idx int32) error {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
		return nil
	})
}

// PickN copies the item n items below the top onto the top.
func (s *stack) PickN(n int32) error {
	return s.nthItem(n, false)
}

// RollN moves the item n items below the top onto the top.
func (s *stack) RollN(n int32) error {
	return s.nthItem(n, true)
}

func (s *stack) nthItem(n int32, remove bool) error {
	so, err := s.PeekByteArray(n)
	if err != nil {
		return err
	}
	if remove {
		_, err := s.nipN(n)
		if err != nil {
			return err
		}
	}
	s.PushByteArray(so)
	return nil
}

func (s *stack) forN(n int32, do func(idx int32) error) error {
	for i := int32(0); i < n; i++ {
		if err := do(i); err != nil {
			return err
		}
	}
	return nil
}

// Swap exchanges the items at idx1 and idx2 (both counted from the top).
func (s *stack) Swap(idx1, idx2 int32) error {
	a, err := s.PeekByteArray(idx1)
	if err != nil {
		return err
	}
	b, err := s.PeekByteArray(idx2)
	if err != nil {
		return err
	}
	sz := int32(len(s.stk))
	s.stk[sz-idx1-1], s.stk[sz-idx2-1] = b, a
	return nil
}

// Erase removes the half-open range [start, stop) of top-relative indices.
func (s *stack) Erase(start, stop int32) error {
	sz := int32(len(s.stk))
	if start < 0 || stop < start || stop > sz {
		return scriptError(ErrInvalidStackOperation, "invalid erase range")
	}
	lo, hi := sz-stop, sz-start
	s.stk = append(s.stk[:lo], s.stk[hi:]...)
	return nil
}

// Insert inserts b at top-relative index idx.
func (s *stack) Insert(idx int32, b []byte) error {
	sz := int32(len(s.stk))
	if idx < 0 || idx > sz {
		return scriptError(ErrInvalidStackOperation, "invalid insert index")
	}
	at := sz - idx
	s.stk = append(s.stk[:at], append([][]byte{b}, s.stk[at:]...)...)
	return nil
}

// String returns a human-readable, bottom-to-top dump of the stack, used
// only for diagnostics.
func (s *stack) String() string {
	var b strings.Builder
	for i, item := range s.stk {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%x", item)
	}
	return b.String()
}
