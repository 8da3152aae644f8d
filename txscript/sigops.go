package txscript

// GetSigOpCount returns pkScript's legacy signature operation count: every
// OP_CHECKSIG/OP_CHECKSIGVERIFY counts as one, and OP_CHECKMULTISIG(VERIFY)
// always counts as MaxPubKeysPerMultiSig, whatever push precedes it
// (GetPreciseSigOpCount reads the key count from a preceding OP_1-OP_16).
// Malformed scripts count zero rather than erroring, matching the block
// validator's sanity-check contract of scoring a bad script rather than
// aborting.
func GetSigOpCount(pkScript []byte) int {
	pops, err := parseScript(pkScript)
	if err != nil {
		return 0
	}
	return getSigOpCount(pops, false)
}

// GetPreciseSigOpCount returns the same count as GetSigOpCount, but for a
// CHECKMULTISIG preceded by scriptSig (the spending input's scriptSig for a
// P2SH output), it reads the actual number of pushed public keys out of the
// redeem script rather than falling back to the conservative default.
func GetPreciseSigOpCount(scriptSig, pkScript []byte, isScriptHash bool) int {
	pops, err := parseScript(pkScript)
	if err != nil {
		return 0
	}

	if !isScriptHash {
		return getSigOpCount(pops, true)
	}

	sigPops, err := parseScript(scriptSig)
	if err != nil || len(sigPops) == 0 || !isPushOnly(sigPops) {
		return 0
	}

	redeemScript, err := sigPops[len(sigPops)-1].bytes()
	if err != nil {
		return 0
	}
	redeemPops, err := parseScript(redeemScript)
	if err != nil {
		return 0
	}
	return getSigOpCount(redeemPops, true)
}

func getSigOpCount(pops []parsedOpcode, precise bool) int {
	count := 0
	for i, pop := range pops {
		switch pop.opcode.value {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			count++
		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			if precise && i > 0 && pops[i-1].opcode.value >= OP_1 && pops[i-1].opcode.value <= OP_16 {
				count += asSmallInt(pops[i-1].opcode.value)
			} else {
				count += MaxPubKeysPerMultiSig
			}
		}
	}
	return count
}

// MaxPubKeysPerMultiSig bounds the number of public keys CHECKMULTISIG will
// accept, and is the conservative per-opcode sigop charge when the key count
// can't be read directly off a small-int push.
const MaxPubKeysPerMultiSig = 20
