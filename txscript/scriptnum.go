package txscript

import "fmt"

// defaultScriptNumLen is the maximum number of bytes an arithmetic-opcode
// operand may occupy; wider limits are used explicitly by the
// locktime opcodes (5) and coinbase-height decoding (6).
const defaultScriptNumLen = 4

// scriptNum represents the signed little-endian integer consensus scripts
// operate on. Width is bounded (locktime opcodes widen to 5 bytes, coinbase
// height decoding to 6) so a native int64 holds every legal value without
// overflow, unlike the upstream reference implementation's arbitrary
// precision representation.
type scriptNum int64

// checkMinimalDataEncoding returns an error if b is not the minimal
// encoding of the number it represents, the minimal-encoding rule.
func checkMinimalDataEncoding(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	// The last byte, stripped of its sign bit, must be nonzero -- otherwise
	// a shorter encoding using one fewer byte was possible.
	if b[len(b)-1]&0x7f == 0 {
		if len(b) == 1 || b[len(b)-2]&0x80 == 0 {
			return scriptError(ErrMinimalData, "non-minimally encoded script number")
		}
	}
	return nil
}

// makeScriptNum decodes a scriptNum from b, enforcing the byte-length limit
// and, when requireMinimal is set, minimal encoding.
func makeScriptNum(b []byte, requireMinimal bool, scriptNumLen int) (scriptNum, error) {
	if len(b) > scriptNumLen {
		return 0, scriptError(ErrNumberTooBig, fmt.Sprintf(
			"numeric value encoded as %d bytes, max allowed is %d", len(b), scriptNumLen))
	}
	if requireMinimal {
		if err := checkMinimalDataEncoding(b); err != nil {
			return 0, err
		}
	}
	if len(b) == 0 {
		return 0, nil
	}

	var result int64
	for i, d := range b {
		result |= int64(d) << uint8(8*i)
	}

	// The most significant bit of the most significant byte is the sign bit.
	if b[len(b)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(b)-1)))
		return scriptNum(-result), nil
	}
	return scriptNum(result), nil
}

// Bytes returns the minimally-encoded, signed little-endian representation
// of n, with an explicit sign byte appended whenever the natural encoding's
// top bit would otherwise be misread as a sign.
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	absoluteValue := n
	if isNegative {
		absoluteValue = -n
	}

	result := make([]byte, 0, 9)
	for absoluteValue > 0 {
		result = append(result, byte(absoluteValue&0xff))
		absoluteValue >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

func (n scriptNum) Int32() int32 {
	const int32Max = 1<<31 - 1
	const int32Min = -1 << 31
	if n > int32Max {
		return int32Max
	}
	if n < int32Min {
		return int32Min
	}
	return int32(n)
}
