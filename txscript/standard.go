package txscript

// extractWitnessProgram reports whether pops is shaped like a witness
// program (spec GLOSSARY: a version push, OP_0 or OP_1..OP_16, followed by
// a single 2-40 byte push) and, if so, returns its version and program
// bytes.
func extractWitnessProgram(pops []parsedOpcode) (version int, program []byte, ok bool) {
	if len(pops) != 2 {
		return 0, nil, false
	}
	if !isSmallInt(pops[0].opcode.value) {
		return 0, nil, false
	}
	if pops[1].opcode.value > OP_DATA_75 {
		return 0, nil, false
	}
	if len(pops[1].data) < 2 || len(pops[1].data) > 40 {
		return 0, nil, false
	}
	return asSmallInt(pops[0].opcode.value), pops[1].data, true
}

// isWitnessProgram reports whether script is shaped like a witness program.
func isWitnessProgram(script []byte) bool {
	pops, err := parseScript(script)
	if err != nil {
		return false
	}
	_, _, ok := extractWitnessProgram(pops)
	return ok
}

// ScriptClass classifies a pkScript's standard shape.
type ScriptClass int

const (
	NonStandardTy ScriptClass = iota
	PubKeyHashTy
	ScriptHashTy
	WitnessV0PubKeyHashTy
	WitnessV0ScriptHashTy
	WitnessUnknownTy
	MultiSigTy
	NullDataTy
)

func (c ScriptClass) String() string {
	switch c {
	case PubKeyHashTy:
		return "pubkeyhash"
	case ScriptHashTy:
		return "scripthash"
	case WitnessV0PubKeyHashTy:
		return "witness_v0_keyhash"
	case WitnessV0ScriptHashTy:
		return "witness_v0_scripthash"
	case WitnessUnknownTy:
		return "witness_unknown"
	case MultiSigTy:
		return "multisig"
	case NullDataTy:
		return "nulldata"
	}
	return "nonstandard"
}

// ExtractPubKeyHash returns the 20-byte hash committed to by a standard
// pay-to-pubkey-hash script, or nil if pkScript isn't that shape. Used by
// the coins codec's script-compression scheme.
func ExtractPubKeyHash(pkScript []byte) []byte {
	pops, err := parseScript(pkScript)
	if err != nil {
		return nil
	}
	if len(pops) == 5 &&
		pops[0].opcode.value == OP_DUP &&
		pops[1].opcode.value == OP_HASH160 &&
		pops[2].opcode.value == OP_DATA_20 &&
		pops[3].opcode.value == OP_EQUALVERIFY &&
		pops[4].opcode.value == OP_CHECKSIG {
		return pops[2].data
	}
	return nil
}

// ExtractScriptHash returns the 20-byte hash committed to by a standard
// pay-to-script-hash script, or nil if pkScript isn't that shape.
func ExtractScriptHash(pkScript []byte) []byte {
	pops, err := parseScript(pkScript)
	if err != nil {
		return nil
	}
	return extractScriptHash(pops)
}

// ExtractCompressedPubKey returns the 33-byte compressed public key from a
// standard pay-to-pubkey script, or nil if pkScript isn't that shape.
func ExtractCompressedPubKey(pkScript []byte) []byte {
	pops, err := parseScript(pkScript)
	if err != nil {
		return nil
	}
	if len(pops) == 2 && pops[0].opcode.value == OP_DATA_33 && pops[1].opcode.value == OP_CHECKSIG {
		data := pops[0].data
		if len(data) == 33 && (data[0] == 0x02 || data[0] == 0x03) {
			return data
		}
	}
	return nil
}

// GetScriptClass classifies pkScript by its opcode shape.
func GetScriptClass(pkScript []byte) ScriptClass {
	pops, err := parseScript(pkScript)
	if err != nil {
		return NonStandardTy
	}

	if version, program, ok := extractWitnessProgram(pops); ok {
		switch {
		case version == 0 && len(program) == 20:
			return WitnessV0PubKeyHashTy
		case version == 0 && len(program) == 32:
			return WitnessV0ScriptHashTy
		default:
			return WitnessUnknownTy
		}
	}

	if extractScriptHash(pops) != nil {
		return ScriptHashTy
	}

	if len(pops) == 5 &&
		pops[0].opcode.value == OP_DUP &&
		pops[1].opcode.value == OP_HASH160 &&
		pops[2].opcode.value == OP_DATA_20 &&
		pops[3].opcode.value == OP_EQUALVERIFY &&
		pops[4].opcode.value == OP_CHECKSIG {
		return PubKeyHashTy
	}

	if len(pops) >= 4 && pops[len(pops)-1].opcode.value == OP_CHECKMULTISIG &&
		isSmallInt(pops[0].opcode.value) && isSmallInt(pops[len(pops)-2].opcode.value) {
		return MultiSigTy
	}

	if len(pops) >= 1 && pops[0].opcode.value == OP_RETURN {
		return NullDataTy
	}

	return NonStandardTy
}
