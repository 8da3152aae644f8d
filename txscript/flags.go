package txscript

// ScriptFlags is the bitmask of soft-fork and policy gates a caller selects
// a caller assembles; each bit independently enables one upgrade or stricter check
// on top of the permanently-active base rules.
type ScriptFlags uint32

const (
	// ScriptBip16 enables P2SH evaluation (BIP16).
	ScriptBip16 ScriptFlags = 1 << iota

	// ScriptStrictMultiSig rejects a non-empty CHECKMULTISIG dummy element.
	ScriptStrictMultiSig

	// ScriptDiscourageUpgradableNops fails on OP_NOP1 and OP_NOP4-OP_NOP10
	// so future soft forks repurposing them can be tested ahead of
	// activation.
	ScriptDiscourageUpgradableNops

	// ScriptVerifyCleanStack requires exactly one true element remain after
	// a successful P2SH or witness evaluation.
	ScriptVerifyCleanStack

	// ScriptVerifyCheckLockTimeVerify enables OP_CHECKLOCKTIMEVERIFY
	// (BIP65); without it OP_NOP2 behaves as a plain NOP.
	ScriptVerifyCheckLockTimeVerify

	// ScriptVerifyCheckSequenceVerify enables OP_CHECKSEQUENCEVERIFY
	// (BIP112); without it OP_NOP3 behaves as a plain NOP.
	ScriptVerifyCheckSequenceVerify

	// ScriptVerifyWitness enables segregated witness program evaluation
	// (BIP141/BIP143).
	ScriptVerifyWitness

	// ScriptVerifyDiscourageUpgradableWitnessProgram fails on an unknown
	// witness version/length combination instead of treating it as
	// anyone-can-spend.
	ScriptVerifyDiscourageUpgradableWitnessProgram

	// ScriptVerifyMinimalIf requires OP_IF/OP_NOTIF's argument be exactly
	// empty or {0x01} under witness v0 evaluation.
	ScriptVerifyMinimalIf

	// ScriptVerifyNullFail requires every failed CHECKSIG/CHECKMULTISIG
	// signature argument be the empty byte string.
	ScriptVerifyNullFail

	// ScriptVerifyWitnessPubKeyType requires a compressed pubkey in
	// witness-program signature checks.
	ScriptVerifyWitnessPubKeyType

	// ScriptVerifyMinimalData requires every data push use its shortest
	// encoding, and every operand already on the stack be a minimally
	// encoded scriptNum.
	ScriptVerifyMinimalData

	// ScriptVerifyStrictEncoding requires DER signature encoding and a
	// recognized pubkey encoding.
	ScriptVerifyStrictEncoding

	// ScriptVerifyDERSignatures requires strict DER encoding alone
	// (STRICTENC implies this; kept distinct so callers can phase the two
	// checks in independently, matching the historical soft-fork order).
	ScriptVerifyDERSignatures

	// ScriptVerifyLowS requires the S component of a signature be at most
	// half the curve order.
	ScriptVerifyLowS

	// ScriptVerifySigPushOnly requires a scriptSig contain only data pushes.
	ScriptVerifySigPushOnly

	// ScriptVerifyMAST enables the experimental v1 witness MAST extension.
	ScriptVerifyMAST
)
