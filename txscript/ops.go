package txscript

import (
	"fmt"

	"github.com/massconsensus/btccore/ecc"
	"github.com/massconsensus/btccore/wire"
)

// opcodePushData pushes the instruction's associated data (synthesizing the
// scriptNum encoding for OP_0/OP_1NEGATE/OP_1-OP_16) onto the stack.
func opcodePushData(pop *parsedOpcode, vm *Engine) error {
	data, err := pop.bytes()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(data)
	return nil
}

func opcodeNegate(pop *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(-1))
	return nil
}

func opcodeReserved(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrBadOpcode, fmt.Sprintf("attempt to execute reserved opcode %s", pop.opcode.name))
}

func opcodeNSmallInt(pop *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(asSmallInt(pop.opcode.value)))
	return nil
}

func opcodeNop(pop *parsedOpcode, vm *Engine) error {
	switch pop.opcode.value {
	case OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		if vm.hasFlag(ScriptDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNOPs, fmt.Sprintf(
				"%s reserved for soft-fork upgrades", pop.opcode.name))
		}
	}
	return nil
}

func popIfCondition(pop *parsedOpcode, vm *Engine) (bool, error) {
	if vm.hasFlag(ScriptVerifyMinimalIf) && vm.sigVersion == wire.SigVersionWitness {
		b, err := vm.dstack.PeekByteArray(0)
		if err != nil {
			return false, err
		}
		if len(b) > 1 || (len(b) == 1 && b[0] != 1) {
			return false, scriptError(ErrMinimalIf, "conditional argument is not minimally encoded")
		}
	}
	return vm.dstack.PopBool()
}

func opcodeIf(pop *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfCondition(pop, vm)
		if err != nil {
			return err
		}
		if ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

func opcodeNotIf(pop *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfCondition(pop, vm)
		if err != nil {
			return err
		}
		if !ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

func opcodeElse(pop *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional, "encountered OP_ELSE with no matching OP_IF")
	}
	idx := len(vm.condStack) - 1
	switch vm.condStack[idx] {
	case OpCondTrue:
		vm.condStack[idx] = OpCondFalse
	case OpCondFalse:
		vm.condStack[idx] = OpCondTrue
	case OpCondSkip:
		// An OP_ELSE nested inside an inactive branch stays inactive.
	}
	return nil
}

func opcodeEndif(pop *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional, "encountered OP_ENDIF with no matching OP_IF")
	}
	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

func opcodeVerify(pop *parsedOpcode, vm *Engine) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !verified {
		return scriptError(ErrVerify, "OP_VERIFY failed")
	}
	return nil
}

func opcodeReturn(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrOpReturn, "script returned early")
}

func opcodeToAltStack(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.astack.PushByteArray(so)
	return nil
}

func opcodeFromAltStack(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.astack.PopByteArray()
	if err != nil {
		return scriptError(ErrInvalidAltStackOperation, err.Error())
	}
	vm.dstack.PushByteArray(so)
	return nil
}

func opcode2Drop(pop *parsedOpcode, vm *Engine) error { return vm.dstack.DropN(2) }
func opcode2Dup(pop *parsedOpcode, vm *Engine) error  { return vm.dstack.DupN(2) }
func opcode3Dup(pop *parsedOpcode, vm *Engine) error  { return vm.dstack.DupN(3) }
func opcode2Over(pop *parsedOpcode, vm *Engine) error { return vm.dstack.OverN(2) }
func opcode2Rot(pop *parsedOpcode, vm *Engine) error  { return vm.dstack.RotN(2) }
func opcode2Swap(pop *parsedOpcode, vm *Engine) error { return vm.dstack.SwapN(2) }

func opcodeIfDup(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(so) {
		vm.dstack.PushByteArray(so)
	}
	return nil
}

func opcodeDepth(pop *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	return nil
}

func opcodeDrop(pop *parsedOpcode, vm *Engine) error { return vm.dstack.DropN(1) }
func opcodeDup(pop *parsedOpcode, vm *Engine) error  { return vm.dstack.DupN(1) }

func opcodeNip(pop *parsedOpcode, vm *Engine) error {
	_, err := vm.dstack.nipN(1)
	return err
}

func opcodeOver(pop *parsedOpcode, vm *Engine) error { return vm.dstack.OverN(1) }

func opcodePick(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PickN(int32(n))
}

func opcodeRoll(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.RollN(int32(n))
}

func opcodeRot(pop *parsedOpcode, vm *Engine) error  { return vm.dstack.RotN(1) }
func opcodeSwap(pop *parsedOpcode, vm *Engine) error { return vm.dstack.SwapN(1) }

func opcodeTuck(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	return vm.dstack.Insert(2, so)
}

func opcodeDisabled(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrDisabledOpcode, fmt.Sprintf("attempt to execute disabled opcode %s", pop.opcode.name))
}

func opcodeSize(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(len(so)))
	return nil
}

func opcodeEqual(pop *parsedOpcode, vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(bytesEqual(a, b))
	return nil
}

func opcodeEqualVerify(pop *parsedOpcode, vm *Engine) error {
	if err := opcodeEqual(pop, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrEqualVerify, "OP_EQUALVERIFY failed")
	}
	return nil
}

func opcode1Add(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(n + 1)
	return nil
}

func opcode1Sub(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(n - 1)
	return nil
}

func opcodeNegateNum(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(-n)
	return nil
}

func opcodeAbs(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if n < 0 {
		n = -n
	}
	vm.dstack.PushInt(n)
	return nil
}

func opcodeNot(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	var result scriptNum
	if n == 0 {
		result = 1
	}
	vm.dstack.PushInt(result)
	return nil
}

func opcode0NotEqual(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	var result scriptNum
	if n != 0 {
		result = 1
	}
	vm.dstack.PushInt(result)
	return nil
}

func opcodeAdd(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a + b)
	return nil
}

func opcodeSub(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a - b)
	return nil
}

func boolToNum(b bool) scriptNum {
	if b {
		return 1
	}
	return 0
}

func opcodeBoolAnd(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a != 0 && b != 0))
	return nil
}

func opcodeBoolOr(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a != 0 || b != 0))
	return nil
}

func opcodeNumEqual(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a == b))
	return nil
}

func opcodeNumEqualVerify(pop *parsedOpcode, vm *Engine) error {
	if err := opcodeNumEqual(pop, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrNumEqualVerify, "OP_NUMEQUALVERIFY failed")
	}
	return nil
}

func opcodeNumNotEqual(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a != b))
	return nil
}

func opcodeLessThan(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a < b))
	return nil
}

func opcodeGreaterThan(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a > b))
	return nil
}

func opcodeLessThanOrEqual(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a <= b))
	return nil
}

func opcodeGreaterThanOrEqual(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(boolToNum(a >= b))
	return nil
}

func opcodeMin(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a < b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeMax(pop *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a > b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeWithin(pop *parsedOpcode, vm *Engine) error {
	maxVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	minVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	x, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}

func opcodeRipemd160(pop *parsedOpcode, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(ecc.Ripemd160(buf))
	return nil
}

func opcodeSha1(pop *parsedOpcode, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(ecc.Sha1(buf))
	return nil
}

func opcodeSha256(pop *parsedOpcode, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(ecc.Sha256(buf))
	return nil
}

func opcodeHash160(pop *parsedOpcode, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(ecc.Hash160(buf))
	return nil
}

func opcodeHash256(pop *parsedOpcode, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(ecc.Hash256(buf))
	return nil
}

func opcodeCodeSeparator(pop *parsedOpcode, vm *Engine) error {
	vm.lastCodeSep = vm.scriptOff
	return nil
}

// sigSubscript builds the subscript OP_CHECKSIG(VERIFY) hashes over: the
// current script from the last OP_CODESEPARATOR onward, with embedded
// code separators stripped and, for the legacy sig version only, every
// push equal to sig also stripped (the original anti-malleability measure
// BIP143 made unnecessary for witness scripts).
func sigSubscript(vm *Engine, sig []byte) ([]byte, error) {
	sub := removeOpcode(vm.subScript(), OP_CODESEPARATOR)
	if vm.sigVersion == wire.SigVersionBase {
		sub = removeOpcodeByData(sub, sig)
	}
	return unparseScript(sub)
}

func opcodeCheckSig(pop *parsedOpcode, vm *Engine) error {
	pubKeyBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	fullSigBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if len(fullSigBytes) == 0 {
		vm.dstack.PushBool(false)
		return nil
	}

	hashType := wire.SigHashType(fullSigBytes[len(fullSigBytes)-1])
	sigBytes := fullSigBytes[:len(fullSigBytes)-1]

	if err := vm.checkHashTypeEncoding(hashType); err != nil {
		return err
	}
	if err := vm.checkSignatureEncoding(sigBytes); err != nil {
		return err
	}
	if err := vm.checkPubKeyEncoding(pubKeyBytes); err != nil {
		return err
	}

	subscript, err := sigSubscript(vm, fullSigBytes)
	if err != nil {
		return err
	}

	var hash [32]byte
	if vm.sigVersion == wire.SigVersionWitness {
		hash = vm.tx.CalcWitnessSignatureHash(subscript, vm.hashCache, hashType, vm.txIdx, vm.inputAmount)
	} else {
		hash = vm.tx.CalcSignatureHash(subscript, hashType, vm.txIdx)
	}

	valid := verifySignature(vm, hash, sigBytes, pubKeyBytes)

	if !valid && vm.hasFlag(ScriptVerifyNullFail) && len(sigBytes) > 0 {
		return scriptError(ErrNullFail, "signature not empty on failed checksig")
	}

	vm.dstack.PushBool(valid)
	return nil
}

func verifySignature(vm *Engine, hash [32]byte, sigBytes, pubKeyBytes []byte) bool {
	if vm.sigCache != nil && vm.sigCache.Exists(hash, sigBytes, pubKeyBytes) {
		return true
	}
	valid := ecc.Verify(hash, sigBytes, pubKeyBytes)
	if valid && vm.sigCache != nil {
		vm.sigCache.Add(hash, sigBytes, pubKeyBytes)
	}
	return valid
}

func opcodeCheckSigVerify(pop *parsedOpcode, vm *Engine) error {
	if err := opcodeCheckSig(pop, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrCheckSigVerify, "OP_CHECKSIGVERIFY failed")
	}
	return nil
}

func opcodeCheckMultiSig(pop *parsedOpcode, vm *Engine) error {
	numKeys, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if numKeys < 0 || numKeys > 20 {
		return scriptError(ErrPubKeyCount, fmt.Sprintf("invalid pubkey count %d", numKeys))
	}
	numPubKeys := int(numKeys)
	vm.numOps += numPubKeys
	if vm.numOps > maxOpsPerScript {
		return scriptError(ErrOpCount, "exceeded max operation limit")
	}

	pubKeys := make([][]byte, 0, numPubKeys)
	for i := 0; i < numPubKeys; i++ {
		pubKey, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		pubKeys = append(pubKeys, pubKey)
	}

	numSigs, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if numSigs < 0 || int(numSigs) > numPubKeys {
		return scriptError(ErrSigCount, fmt.Sprintf("invalid signature count %d", numSigs))
	}
	numSignatures := int(numSigs)

	signatures := make([][]byte, 0, numSignatures)
	for i := 0; i < numSignatures; i++ {
		sig, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		signatures = append(signatures, sig)
	}

	dummy, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if vm.hasFlag(ScriptStrictMultiSig) && len(dummy) != 0 {
		return scriptError(ErrSigNullDummy, "multisig dummy argument is not the empty element")
	}

	success := true
	sigIdx, keyIdx := 0, 0
	for sigIdx < numSignatures {
		if keyIdx >= numPubKeys {
			success = false
			break
		}

		sig := signatures[sigIdx]
		if len(sig) == 0 {
			keyIdx++
			continue
		}

		hashType := wire.SigHashType(sig[len(sig)-1])
		sigBytes := sig[:len(sig)-1]
		pubKey := pubKeys[keyIdx]

		if err := vm.checkHashTypeEncoding(hashType); err != nil {
			return err
		}
		if err := vm.checkSignatureEncoding(sigBytes); err != nil {
			return err
		}
		if err := vm.checkPubKeyEncoding(pubKey); err != nil {
			return err
		}

		subscriptBytes, err := sigSubscript(vm, sig)
		if err != nil {
			return err
		}

		var hash [32]byte
		if vm.sigVersion == wire.SigVersionWitness {
			hash = vm.tx.CalcWitnessSignatureHash(subscriptBytes, vm.hashCache, hashType, vm.txIdx, vm.inputAmount)
		} else {
			hash = vm.tx.CalcSignatureHash(subscriptBytes, hashType, vm.txIdx)
		}

		if verifySignature(vm, hash, sigBytes, pubKey) {
			sigIdx++
		}
		keyIdx++
	}

	if !success {
		if vm.hasFlag(ScriptVerifyNullFail) {
			for _, sig := range signatures {
				if len(sig) != 0 {
					return scriptError(ErrNullFail, "not all signatures empty on failed checkmultisig")
				}
			}
		}
	}

	vm.dstack.PushBool(success)
	return nil
}

func opcodeCheckMultiSigVerify(pop *parsedOpcode, vm *Engine) error {
	if err := opcodeCheckMultiSig(pop, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrCheckMultiSigVerify, "OP_CHECKMULTISIGVERIFY failed")
	}
	return nil
}

const lockTimeThresholdNum = scriptNum(wire.LockTimeThreshold)

func opcodeCheckLockTimeVerify(pop *parsedOpcode, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckLockTimeVerify) {
		return opcodeNop(pop, vm)
	}

	lockTime, err := vm.dstack.PeekLockTime()
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return scriptError(ErrNegativeLockTime, "negative locktime")
	}

	txLockTime := scriptNum(vm.tx.LockTime)
	if (lockTime < lockTimeThresholdNum) != (txLockTime < lockTimeThresholdNum) {
		return scriptError(ErrUnsatisfiedLockTime, "mismatched locktime types")
	}
	if lockTime > txLockTime {
		return scriptError(ErrUnsatisfiedLockTime, "locktime requirement not satisfied")
	}
	if vm.tx.TxIn[vm.txIdx].Sequence == wire.MaxTxInSequenceNum {
		return scriptError(ErrUnsatisfiedLockTime, "transaction input is finalized")
	}
	return nil
}

func opcodeCheckSequenceVerify(pop *parsedOpcode, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckSequenceVerify) {
		return opcodeNop(pop, vm)
	}

	sequence, err := vm.dstack.PeekLockTime()
	if err != nil {
		return err
	}
	if sequence < 0 {
		return scriptError(ErrNegativeLockTime, "negative sequence")
	}

	if sequence&wire.SequenceLockTimeDisabled != 0 {
		return nil
	}
	if vm.tx.Version < 2 {
		return scriptError(ErrUnsatisfiedLockTime, "transaction version too low for OP_CHECKSEQUENCEVERIFY")
	}

	txSequence := scriptNum(vm.tx.TxIn[vm.txIdx].Sequence)
	if txSequence&wire.SequenceLockTimeDisabled != 0 {
		return scriptError(ErrUnsatisfiedLockTime, "transaction sequence has disable bit set")
	}
	if (sequence & wire.SequenceLockTimeIsSeconds) != (txSequence & wire.SequenceLockTimeIsSeconds) {
		return scriptError(ErrUnsatisfiedLockTime, "mismatched sequence lock-time types")
	}
	if sequence&wire.SequenceLockTimeMask > txSequence&wire.SequenceLockTimeMask {
		return scriptError(ErrUnsatisfiedLockTime, "sequence lock-time requirement not satisfied")
	}
	return nil
}

func opcodeInvalid(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrBadOpcode, fmt.Sprintf("attempt to execute invalid opcode 0x%02x", pop.opcode.value))
}

// decodeLEUint interprets b as an unsigned little-endian integer. Nothing in
// the package calls it; the MAST verifier reads its metadata and position
// fields one byte per tree level.
func decodeLEUint(b []byte) uint64 {
	var v uint64
	for j := range b {
		v |= uint64(b[j]) << uint(8*j)
	}
	return v
}
