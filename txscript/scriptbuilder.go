package txscript

import "fmt"

// ScriptBuilder assembles a script from opcodes and data pushes, always
// choosing the shortest legal push encoding (BIP62 minimal push) the way
// the interpreter itself requires on script verification with the
// MINIMALDATA flag set. It is used internally to synthesize the equivalent
// legacy pkScript for a P2WPKH witness program.
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns a new, empty ScriptBuilder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{script: make([]byte, 0, 32)}
}

// AddOp appends a single opcode.
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddData appends data using the minimal push encoding for its length.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+len(data)+5 > maxScriptSizeBytes {
		b.err = fmt.Errorf("adding %d bytes would exceed the maximum script size", len(data))
		return b
	}
	b.addData(data)
	return b
}

func (b *ScriptBuilder) addData(data []byte) {
	dataLen := len(data)
	switch {
	case dataLen == 0:
		b.script = append(b.script, OP_0)

	case dataLen == 1 && data[0] >= 1 && data[0] <= 16:
		b.script = append(b.script, OP_1+data[0]-1)

	case dataLen == 1 && data[0] == 0x81:
		b.script = append(b.script, OP_1NEGATE)

	case dataLen < OP_PUSHDATA1:
		b.script = append(b.script, byte(OP_DATA_1-1+dataLen))
		b.script = append(b.script, data...)

	case dataLen <= 0xff:
		b.script = append(b.script, OP_PUSHDATA1, byte(dataLen))
		b.script = append(b.script, data...)

	case dataLen <= 0xffff:
		buf := make([]byte, 2)
		buf[0] = byte(dataLen)
		buf[1] = byte(dataLen >> 8)
		b.script = append(b.script, OP_PUSHDATA2)
		b.script = append(b.script, buf...)
		b.script = append(b.script, data...)

	default:
		buf := make([]byte, 4)
		buf[0] = byte(dataLen)
		buf[1] = byte(dataLen >> 8)
		buf[2] = byte(dataLen >> 16)
		buf[3] = byte(dataLen >> 24)
		b.script = append(b.script, OP_PUSHDATA4)
		b.script = append(b.script, buf...)
		b.script = append(b.script, data...)
	}
}

// AddInt64 appends the minimal scriptNum encoding of n.
func (b *ScriptBuilder) AddInt64(n int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if n == 0 {
		b.script = append(b.script, OP_0)
		return b
	}
	if n == -1 {
		b.script = append(b.script, OP_1NEGATE)
		return b
	}
	if n >= 1 && n <= 16 {
		b.script = append(b.script, byte(OP_1+n-1))
		return b
	}
	b.addData(scriptNum(n).Bytes())
	return b
}

// Script returns the assembled script, or any error recorded while
// building it.
func (b *ScriptBuilder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.script, nil
}
