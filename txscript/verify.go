package txscript

import (
	"github.com/massconsensus/btccore/wire"
)

// VerifyScript implements the top-level verify driver:
// execute the input script, then the output script, then whichever of the
// P2SH or witness extensions apply, finishing with the CLEANSTACK check.
func VerifyScript(scriptSig []byte, witness wire.TxWitness, pkScript []byte, tx *wire.MsgTx,
	txIdx int, flags ScriptFlags, sigCache *SigCache, hashCache *wire.TxSigHashes, inputAmount int64) error {

	vm, err := NewEngine(scriptSig, pkScript, tx, txIdx, flags, sigCache, hashCache, inputAmount)
	if err != nil {
		return err
	}

	sigPops, err := parseScript(scriptSig)
	if err != nil {
		return err
	}

	witnessProgram := vm.witnessProgram != nil
	isP2SH := flags&ScriptBip16 == ScriptBip16 && extractScriptHash(vm.scripts[1]) != nil

	if witnessProgram && flags&ScriptVerifyWitness == ScriptVerifyWitness {
		if len(scriptSig) != 0 {
			return scriptError(ErrWitnessMalleated, "native witness program with non-empty scriptSig")
		}
	}

	// Under P2SH the clean-stack rule applies to the stack the redeem script
	// leaves, not to the one the output script leaves.
	if isP2SH {
		vm.flags &^= ScriptVerifyCleanStack
	}

	// Run the input and output scripts. Witness-program chaining is handled
	// transparently by Step(); ordinary P2SH needs a manual third pass
	// below because it must restore the pre-output stack.
	if err := vm.Execute(); err != nil {
		return err
	}

	witnessConsumed := witnessProgram
	if isP2SH {
		consumed, err := verifyP2SH(sigPops, tx, txIdx, flags, sigCache, hashCache, inputAmount)
		if err != nil {
			return err
		}
		witnessConsumed = consumed
	}

	if flags&ScriptVerifyWitness == ScriptVerifyWitness && !witnessConsumed && len(witness) != 0 {
		return scriptError(ErrWitnessUnexpected, "transaction has witness data but output is not a witness program")
	}

	return nil
}

// verifyP2SH re-executes the scriptSig to recover the stack it leaves
// behind, pops the serialized redeem script off the top, and evaluates it
// as the real output script -- continuing into the witness path if the
// redeem script is itself a witness program (P2SH-wrapped segwit). The
// returned bool reports whether a witness program was found and consumed,
// so the caller can still enforce WITNESS_UNEXPECTED against an ordinary
// (non-witness) redeem script.
func verifyP2SH(sigPops []parsedOpcode, tx *wire.MsgTx, txIdx int, flags ScriptFlags,
	sigCache *SigCache, hashCache *wire.TxSigHashes, inputAmount int64) (bool, error) {

	if !isPushOnly(sigPops) {
		return false, scriptError(ErrSigDER, "signature script for P2SH must be push only")
	}

	sigVM := &Engine{flags: flags, sigCache: sigCache, hashCache: hashCache, inputAmount: inputAmount}
	sigVM.dstack.verifyMinimalData = flags&ScriptVerifyMinimalData == ScriptVerifyMinimalData
	sigVM.scripts = [][]parsedOpcode{sigPops}
	sigVM.tx = *tx
	sigVM.txIdx = txIdx
	// Step through the pushes rather than calling Execute, whose final
	// CheckErrorCondition would pop the redeem script off the stack.
	for done := false; !done; {
		var err error
		if done, err = sigVM.Step(); err != nil {
			return false, err
		}
	}

	stack := sigVM.GetStack()
	if len(stack) == 0 {
		return false, scriptError(ErrEvalFalse, "signature script for P2SH has no elements")
	}
	redeemScriptBytes := stack[len(stack)-1]
	remaining := stack[:len(stack)-1]

	redeemPops, err := parseScript(redeemScriptBytes)
	if err != nil {
		return false, err
	}

	if version, program, ok := extractWitnessProgram(redeemPops); ok && flags&ScriptVerifyWitness == ScriptVerifyWitness {
		if len(sigPops) != 1 {
			return false, scriptError(ErrWitnessMalleatedP2SH, "P2SH redeem script is witness program but scriptSig is not a single push")
		}
		wvm := &Engine{flags: flags, sigCache: sigCache, hashCache: hashCache, inputAmount: inputAmount,
			witnessVersion: version, witnessProgram: program}
		wvm.dstack.verifyMinimalData = flags&ScriptVerifyMinimalData == ScriptVerifyMinimalData
		wvm.tx = *tx
		wvm.txIdx = txIdx
		witness := tx.TxIn[txIdx].Witness
		if err := wvm.verifyWitnessProgram(witness); err != nil {
			return true, err
		}
		return true, wvm.Execute()
	}

	redeemVM := &Engine{flags: flags, sigCache: sigCache, hashCache: hashCache, inputAmount: inputAmount}
	redeemVM.dstack.verifyMinimalData = flags&ScriptVerifyMinimalData == ScriptVerifyMinimalData
	redeemVM.scripts = [][]parsedOpcode{redeemPops}
	redeemVM.tx = *tx
	redeemVM.txIdx = txIdx
	redeemVM.SetStack(remaining)
	return false, redeemVM.Execute()
}
