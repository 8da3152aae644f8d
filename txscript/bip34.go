package txscript

// ExtractCoinbaseHeight decodes the block height a coinbase's scriptSig
// commits to as its first push (BIP34): heights 1-16 collapse to the
// single-byte OP_1..OP_16 small-int opcodes rather than a literal push, the
// same minimal-push rule every other data push in the script follows.
func ExtractCoinbaseHeight(scriptSig []byte) (int64, error) {
	pops, err := parseScript(scriptSig)
	if err != nil {
		return 0, err
	}
	if len(pops) == 0 {
		return 0, scriptError(ErrInvalidStackOperation, "scriptSig is empty")
	}

	first := pops[0]
	if isSmallInt(first.opcode.value) {
		return int64(asSmallInt(first.opcode.value)), nil
	}
	if first.opcode.value > OP_PUSHDATA4 || len(first.data) > 6 {
		return 0, scriptError(ErrNumberTooBig, "coinbase height push is not a valid scriptNum")
	}
	num, err := makeScriptNum(first.data, true, 6)
	if err != nil {
		return 0, err
	}
	return int64(num), nil
}

// EncodeCoinbaseHeight returns the minimal scriptSig prefix that commits a
// coinbase to height, built with the same ScriptBuilder every other script
// assembly path uses.
func EncodeCoinbaseHeight(height int64) ([]byte, error) {
	return NewScriptBuilder().AddInt64(height).Script()
}
