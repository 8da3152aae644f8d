package txscript

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"

	"github.com/massconsensus/btccore/ecc"
	"github.com/massconsensus/btccore/logging"
	"github.com/massconsensus/btccore/wire"
)

// halfOrder bounds a valid signature's S component (BIP62 low-S malleability
// fix): S above it has a shorter complement that is equally valid.
var halfOrder = new(big.Int).Rsh(btcec.S256().N, 1)

// Conditional-stack frame states. A frame starts Skip when it nests inside
// an already-inactive branch, so a later OP_ELSE at that depth leaves it
// inactive instead of toggling it on.
const (
	OpCondFalse = 0
	OpCondTrue  = 1
	OpCondSkip  = 2
)

// maxStackSize bounds the combined data and alt stack element count.
const maxStackSize = 1000

// Engine drives execution of the scriptSig/pkScript/witness/redeem-script
// sequence for one transaction input.
type Engine struct {
	scripts        [][]parsedOpcode
	scriptIdx      int
	scriptOff      int
	lastCodeSep    int
	dstack         stack
	astack         stack
	tx             wire.MsgTx
	txIdx          int
	condStack      []int
	numOps         int
	flags          ScriptFlags
	sigCache       *SigCache
	hashCache      *wire.TxSigHashes
	witnessVersion int
	witnessProgram []byte
	inputAmount    int64
	sigVersion     wire.SigVersion
}

func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags&flag == flag
}

// isBranchExecuting reports whether the innermost conditional frame is live.
func (vm *Engine) isBranchExecuting() bool {
	if len(vm.condStack) == 0 {
		return true
	}
	return vm.condStack[len(vm.condStack)-1] == OpCondTrue
}

// executeOpcode applies pop's effect, honoring the always-checked rules
// (disabled/illegal opcodes, op-count, element size) before consulting
// whether the branch is actually live; the minimal-push rule is checked only
// on an executing branch.
func (vm *Engine) executeOpcode(pop *parsedOpcode) error {
	if pop.isDisabled() {
		return scriptError(ErrDisabledOpcode, fmt.Sprintf("attempt to execute disabled opcode %s", pop.opcode.name))
	}
	if pop.alwaysIllegal() {
		return scriptError(ErrBadOpcode, fmt.Sprintf("attempt to execute reserved opcode %s", pop.opcode.name))
	}

	if pop.opcode.value > OP_16 {
		vm.numOps++
		if vm.numOps > maxOpsPerScript {
			return scriptError(ErrOpCount, "exceeded max operation limit")
		}
	} else if len(pop.data) > maxScriptElementSize {
		return scriptError(ErrPushSize, fmt.Sprintf("element size %d exceeds max of %d", len(pop.data), maxScriptElementSize))
	}

	if !vm.isBranchExecuting() && !pop.isConditional() {
		return nil
	}

	if vm.dstack.verifyMinimalData && vm.isBranchExecuting() &&
		pop.opcode.value >= OP_0 && pop.opcode.value <= OP_PUSHDATA4 {
		if err := pop.checkMinimalDataPush(); err != nil {
			return err
		}
	}

	return pop.opcode.opfunc(pop, vm)
}

func (vm *Engine) validPC() error {
	if vm.scriptIdx >= len(vm.scripts) {
		return scriptError(ErrInternal, "past last script")
	}
	if vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
		return scriptError(ErrInternal, "past end of script")
	}
	return nil
}

// isWitnessVersionActive reports whether a witness program of the given
// version is driving this evaluation.
func (vm *Engine) isWitnessVersionActive(version uint) bool {
	return vm.witnessProgram != nil && uint(vm.witnessVersion) == version
}

// CheckErrorCondition reports whether execution completed and left exactly
// one truthy element (or, mid-P2SH/witness evaluation, simply a truthy top).
func (vm *Engine) CheckErrorCondition(finalScript bool) error {
	if vm.scriptIdx < len(vm.scripts) {
		return scriptError(ErrInternal, "execution did not complete")
	}
	// A witness-executed script must always leave exactly one element
	// a legacy script only needs to when the CLEANSTACK
	// policy flag asks for it.
	requireExactlyOne := vm.witnessProgram != nil || vm.hasFlag(ScriptVerifyCleanStack)
	if finalScript && requireExactlyOne && vm.dstack.Depth() != 1 {
		return scriptError(ErrCleanStack, fmt.Sprintf("stack contains %d unexpected items", vm.dstack.Depth()-1))
	} else if vm.dstack.Depth() < 1 {
		return scriptError(ErrEvalFalse, "stack empty at end of execution")
	}

	v, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !v {
		logging.CPrint(logging.DEBUG, "script evaluated to false", logging.LogFormat{
			"scriptIdx": vm.scriptIdx,
		})
		return scriptError(ErrEvalFalse, "false stack entry at end of script execution")
	}
	return nil
}

// Step executes the next instruction, advancing past script boundaries as
// needed. It reports done=true once every script (including any witness
// program pushed mid-run) has finished.
func (vm *Engine) Step() (done bool, err error) {
	if err := vm.validPC(); err != nil {
		return true, err
	}
	opcode := &vm.scripts[vm.scriptIdx][vm.scriptOff]
	vm.scriptOff++

	if err := vm.executeOpcode(opcode); err != nil {
		if serr, ok := err.(Error); ok {
			return true, serr.withPC(opcode.opcode.value, vm.scriptOff-1)
		}
		return true, err
	}

	if vm.dstack.Depth()+vm.astack.Depth() > maxStackSize {
		return false, scriptError(ErrStackSize, "combined stack size exceeds limit")
	}

	if vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
		if len(vm.condStack) != 0 {
			return false, scriptError(ErrUnbalancedConditional, "end of script reached in conditional execution")
		}

		_ = vm.astack.DropN(vm.astack.Depth())

		vm.numOps = 0
		vm.scriptOff = 0
		if vm.scriptIdx == 1 && vm.witnessProgram != nil {
			vm.scriptIdx++

			if vm.dstack.Depth() != 2 && vm.dstack.Depth() != 3 {
				return false, scriptError(ErrInvalidStackOperation, "initial witness program evaluation requires clean stack")
			}
			_ = vm.dstack.DropN(vm.dstack.Depth())
			witness := vm.tx.TxIn[vm.txIdx].Witness
			if err := vm.verifyWitnessProgram(witness); err != nil {
				return false, err
			}
		} else {
			vm.scriptIdx++
		}

		if vm.scriptIdx < len(vm.scripts) && vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
			vm.scriptIdx++
		}
		vm.lastCodeSep = 0
		if vm.scriptIdx >= len(vm.scripts) {
			return true, nil
		}
	}
	return false, nil
}

// Execute runs every remaining instruction and reports the final
// true/false-or-error verdict.
func (vm *Engine) Execute() error {
	done := false
	for !done {
		var err error
		done, err = vm.Step()
		if err != nil {
			return err
		}
	}
	return vm.CheckErrorCondition(true)
}

// subScript returns the current script from the last OP_CODESEPARATOR
// onward, the subscript OP_CHECKSIG and OP_CHECKMULTISIG hash over.
func (vm *Engine) subScript() []parsedOpcode {
	return vm.scripts[vm.scriptIdx][vm.lastCodeSep:]
}

func (vm *Engine) checkHashTypeEncoding(hashType wire.SigHashType) error {
	sigHashType := hashType &^ wire.SigHashAnyOneCanPay
	if sigHashType < wire.SigHashAll || sigHashType > wire.SigHashSingle {
		return scriptError(ErrSigHashType, fmt.Sprintf("invalid hash type 0x%x", hashType))
	}
	return nil
}

func (vm *Engine) checkPubKeyEncoding(pubKey []byte) error {
	if vm.isWitnessVersionActive(0) && vm.hasFlag(ScriptVerifyWitnessPubKeyType) && !btcec.IsCompressedPubKey(pubKey) {
		return scriptError(ErrWitnessPubKeyType, "only compressed keys are accepted post-segwit")
	}
	if !vm.hasFlag(ScriptVerifyStrictEncoding) {
		return nil
	}
	if len(pubKey) == 33 && (pubKey[0] == 0x02 || pubKey[0] == 0x03) {
		return nil
	}
	if len(pubKey) == 65 && pubKey[0] == 0x04 {
		return nil
	}
	return scriptError(ErrPubKeyType, "unsupported public key encoding")
}

// checkSignatureEncoding enforces strict DER structure (DERSIG/STRICTENC)
// and, under LOW_S, that S is at most half the curve order -- the BIP62
// malleability fix.
func (vm *Engine) checkSignatureEncoding(sig []byte) error {
	if !vm.hasFlag(ScriptVerifyDERSignatures) && !vm.hasFlag(ScriptVerifyStrictEncoding) && !vm.hasFlag(ScriptVerifyLowS) {
		return nil
	}

	if len(sig) < 8 {
		return scriptError(ErrSigDER, fmt.Sprintf("malformed signature: too short: %d < 8", len(sig)))
	}
	if len(sig) > 72 {
		return scriptError(ErrSigDER, fmt.Sprintf("malformed signature: too long: %d > 72", len(sig)))
	}
	if sig[0] != 0x30 {
		return scriptError(ErrSigDER, fmt.Sprintf("malformed signature: format has wrong type: 0x%x", sig[0]))
	}
	if int(sig[1]) != len(sig)-2 {
		return scriptError(ErrSigDER, fmt.Sprintf("malformed signature: bad length: %d != %d", sig[1], len(sig)-2))
	}

	rLen := int(sig[3])
	if rLen+5 > len(sig) {
		return scriptError(ErrSigDER, "malformed signature: S out of bounds")
	}
	sLen := int(sig[rLen+5])
	if rLen+sLen+6 != len(sig) {
		return scriptError(ErrSigDER, "malformed signature: invalid R length")
	}
	if sig[2] != 0x02 {
		return scriptError(ErrSigDER, "malformed signature: missing first integer marker")
	}
	if rLen == 0 {
		return scriptError(ErrSigDER, "malformed signature: R length is zero")
	}
	if sig[4]&0x80 != 0 {
		return scriptError(ErrSigDER, "malformed signature: R value is negative")
	}
	if rLen > 1 && sig[4] == 0x00 && sig[5]&0x80 == 0 {
		return scriptError(ErrSigDER, "malformed signature: invalid R value")
	}
	if sig[rLen+4] != 0x02 {
		return scriptError(ErrSigDER, "malformed signature: missing second integer marker")
	}
	if sLen == 0 {
		return scriptError(ErrSigDER, "malformed signature: S length is zero")
	}
	if sig[rLen+6]&0x80 != 0 {
		return scriptError(ErrSigDER, "malformed signature: S value is negative")
	}
	if sLen > 1 && sig[rLen+6] == 0x00 && sig[rLen+7]&0x80 == 0 {
		return scriptError(ErrSigDER, "malformed signature: invalid S value")
	}

	if vm.hasFlag(ScriptVerifyLowS) {
		sValue := new(big.Int).SetBytes(sig[rLen+6 : rLen+6+sLen])
		if sValue.Cmp(halfOrder) > 0 {
			return scriptError(ErrSigHighS, "signature S value is higher than half the curve order")
		}
	}

	return nil
}

func getStack(s *stack) [][]byte {
	array := make([][]byte, s.Depth())
	for i := range array {
		array[len(array)-i-1], _ = s.PeekByteArray(int32(i))
	}
	return array
}

func setStack(s *stack, data [][]byte) {
	_ = s.DropN(s.Depth())
	for i := range data {
		s.PushByteArray(data[i])
	}
}

// GetStack returns the primary stack bottom-up.
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// SetStack replaces the primary stack's contents, last element on top.
func (vm *Engine) SetStack(data [][]byte) {
	setStack(&vm.dstack, data)
}

// verifyWitnessProgram validates and, on success, pushes the next script to
// execute for the witness program recorded at engine construction.
func (vm *Engine) verifyWitnessProgram(witness [][]byte) error {
	switch {
	case vm.isWitnessVersionActive(0):
		return vm.verifyWitnessV0Program(witness)
	case vm.isWitnessVersionActive(1) && vm.hasFlag(ScriptVerifyMAST):
		return vm.verifyMASTProgram(witness)
	default:
		if vm.hasFlag(ScriptVerifyDiscourageUpgradableWitnessProgram) {
			return scriptError(ErrDiscourageUpgradableWitnessProgram, "new witness program versions are not yet supported")
		}
		// Permissive fallback: treat an unknown, non-discouraged witness
		// version/program as trivially satisfied.
		vm.scripts = append(vm.scripts, nil)
		vm.dstack.PushBool(true)
		return nil
	}
}

func (vm *Engine) verifyWitnessV0Program(witness [][]byte) error {
	switch len(vm.witnessProgram) {
	case 32:
		if len(witness) == 0 {
			return scriptError(ErrWitnessProgramWitnessEmpty, "witness program empty passed empty witness")
		}
		witnessScript := witness[len(witness)-1]
		witnessHash := ecc.Sha256(witnessScript)
		if !bytes.Equal(witnessHash, vm.witnessProgram) {
			return scriptError(ErrWitnessProgramMismatch, "witness program hash mismatch")
		}

		pops, err := parseScript(witnessScript)
		if err != nil {
			return err
		}
		vm.scripts = append(vm.scripts, pops)
		vm.sigVersion = wire.SigVersionWitness
		vm.SetStack(witness[:len(witness)-1])

	case 20:
		if len(witness) != 2 {
			return scriptError(ErrWitnessProgramMismatch, fmt.Sprintf("witness program hash mismatch: %d items", len(witness)))
		}
		pkScript, err := NewScriptBuilder().
			AddOp(OP_DUP).AddOp(OP_HASH160).AddData(vm.witnessProgram).
			AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).Script()
		if err != nil {
			return err
		}
		pops, err := parseScript(pkScript)
		if err != nil {
			return err
		}
		vm.scripts = append(vm.scripts, pops)
		vm.sigVersion = wire.SigVersionWitness
		vm.SetStack(witness)

	default:
		return scriptError(ErrWitnessProgramWrongLength, fmt.Sprintf(
			"length %d is invalid for witness program version 0", len(vm.witnessProgram)))
	}

	for _, elem := range vm.GetStack() {
		if len(elem) > maxScriptElementSize {
			return scriptError(ErrPushSize, "witness stack element exceeds maximum size")
		}
	}
	return nil
}

// NewEngine constructs an Engine ready to verify pkScript for input txIdx of
// tx, chaining the supplied scriptSig ahead of it.
func NewEngine(scriptSig, pkScript []byte, tx *wire.MsgTx, txIdx int, flags ScriptFlags,
	sigCache *SigCache, hashCache *wire.TxSigHashes, inputAmount int64) (*Engine, error) {
	if txIdx < 0 || txIdx >= len(tx.TxIn) {
		return nil, scriptError(errInvalidIndex, fmt.Sprintf("transaction input index %d is negative or out of bounds", txIdx))
	}
	if len(pkScript) == 0 {
		return nil, scriptError(ErrWitnessUnexpected, "empty pkScript")
	}

	vm := Engine{flags: flags, sigCache: sigCache, hashCache: hashCache, inputAmount: inputAmount}
	vm.dstack.verifyMinimalData = flags&ScriptVerifyMinimalData == ScriptVerifyMinimalData
	vm.astack.verifyMinimalData = vm.dstack.verifyMinimalData

	if flags&ScriptVerifySigPushOnly == ScriptVerifySigPushOnly {
		sigPops, err := parseScript(scriptSig)
		if err != nil {
			return nil, err
		}
		if !isPushOnly(sigPops) {
			return nil, scriptError(ErrSigDER, "signature script is not push only")
		}
	}

	scripts := [][]byte{scriptSig, pkScript}
	vm.scripts = make([][]parsedOpcode, len(scripts))
	for i, scr := range scripts {
		if len(scr) > maxScriptSizeBytes {
			return nil, scriptError(ErrScriptSize, "script is larger than the maximum allowed size")
		}
		pops, err := parseScript(scr)
		if err != nil {
			return nil, err
		}
		vm.scripts[i] = pops
	}

	// An empty scriptSig has no instructions to step through; start at the
	// pkScript.
	if len(vm.scripts[0]) == 0 {
		vm.scriptIdx++
	}

	if flags&ScriptVerifyWitness == ScriptVerifyWitness {
		if version, program, ok := extractWitnessProgram(vm.scripts[1]); ok {
			vm.witnessVersion = version
			vm.witnessProgram = program
		} else if len(tx.TxIn[txIdx].Witness) != 0 {
			return nil, scriptError(ErrWitnessUnexpected, "transaction has witness data but output script is not a witness program")
		}
	}

	vm.tx = *tx
	vm.txIdx = txIdx
	return &vm, nil
}
