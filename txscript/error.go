package txscript

import "fmt"

// ErrorCode enumerates the closed set of script-execution failures.
// Callers branch on the specific code; nothing in the interpreter
// returns an ad-hoc error once execution has started.
type ErrorCode int

const (
	ErrScriptSize ErrorCode = iota
	ErrPushSize
	ErrOpCount
	ErrStackSize
	ErrSigCount
	ErrPubKeyCount
	ErrInvalidStackOperation
	ErrInvalidAltStackOperation
	ErrVerify
	ErrEqualVerify
	ErrNumEqualVerify
	ErrCheckSigVerify
	ErrCheckMultiSigVerify
	ErrBadOpcode
	ErrDisabledOpcode
	ErrOpReturn
	ErrUnbalancedConditional
	ErrNegativeLockTime
	ErrUnsatisfiedLockTime
	ErrDiscourageUpgradableNOPs
	ErrMinimalData
	ErrMinimalIf
	ErrSigDER
	ErrSigHighS
	ErrSigHashType
	ErrSigNullDummy
	ErrNullFail
	ErrPubKeyType
	ErrWitnessPubKeyType
	ErrEvalFalse
	ErrCleanStack
	ErrWitnessMalleated
	ErrWitnessMalleatedP2SH
	ErrWitnessUnexpected
	ErrWitnessProgramWitnessEmpty
	ErrWitnessProgramMismatch
	ErrWitnessProgramWrongLength
	ErrDiscourageUpgradableWitnessProgram
	ErrNumberTooBig
	ErrMalformedPush
	ErrInternal
	ErrUnknownError

	// Housekeeping codes that sit outside the consensus-failure taxonomy
	// but are needed to report non-consensus plumbing failures (malformed
	// caller input, e.g. an out-of-range input index). Kept distinct from
	// ErrUnknownError so tests can tell "the script failed" apart from
	// "the caller asked for something nonsensical".
	errInvalidIndex
)

var errorCodeStrings = map[ErrorCode]string{
	ErrScriptSize:                         "SCRIPT_SIZE",
	ErrPushSize:                           "PUSH_SIZE",
	ErrOpCount:                            "OP_COUNT",
	ErrStackSize:                          "STACK_SIZE",
	ErrSigCount:                           "SIG_COUNT",
	ErrPubKeyCount:                        "PUBKEY_COUNT",
	ErrInvalidStackOperation:              "INVALID_STACK_OPERATION",
	ErrInvalidAltStackOperation:           "INVALID_ALTSTACK_OPERATION",
	ErrVerify:                             "VERIFY",
	ErrEqualVerify:                        "EQUALVERIFY",
	ErrNumEqualVerify:                     "NUMEQUALVERIFY",
	ErrCheckSigVerify:                     "CHECKSIGVERIFY",
	ErrCheckMultiSigVerify:                "CHECKMULTISIGVERIFY",
	ErrBadOpcode:                          "BAD_OPCODE",
	ErrDisabledOpcode:                     "DISABLED_OPCODE",
	ErrOpReturn:                           "OP_RETURN",
	ErrUnbalancedConditional:              "UNBALANCED_CONDITIONAL",
	ErrNegativeLockTime:                   "NEGATIVE_LOCKTIME",
	ErrUnsatisfiedLockTime:                "UNSATISFIED_LOCKTIME",
	ErrDiscourageUpgradableNOPs:           "DISCOURAGE_UPGRADABLE_NOPS",
	ErrMinimalData:                        "MINIMALDATA",
	ErrMinimalIf:                          "MINIMALIF",
	ErrSigDER:                             "SIG_DER",
	ErrSigHighS:                           "SIG_HIGH_S",
	ErrSigHashType:                        "SIG_HASHTYPE",
	ErrSigNullDummy:                       "SIG_NULLDUMMY",
	ErrNullFail:                           "NULLFAIL",
	ErrPubKeyType:                         "PUBKEYTYPE",
	ErrWitnessPubKeyType:                  "WITNESS_PUBKEYTYPE",
	ErrEvalFalse:                          "EVAL_FALSE",
	ErrCleanStack:                         "CLEANSTACK",
	ErrWitnessMalleated:                   "WITNESS_MALLEATED",
	ErrWitnessMalleatedP2SH:               "WITNESS_MALLEATED_P2SH",
	ErrWitnessUnexpected:                  "WITNESS_UNEXPECTED",
	ErrWitnessProgramWitnessEmpty:         "WITNESS_PROGRAM_WITNESS_EMPTY",
	ErrWitnessProgramMismatch:             "WITNESS_PROGRAM_MISMATCH",
	ErrWitnessProgramWrongLength:          "WITNESS_PROGRAM_WRONG_LENGTH",
	ErrDiscourageUpgradableWitnessProgram: "DISCOURAGE_UPGRADABLE_WITNESS_PROGRAM",
	ErrNumberTooBig:                       "UNKNOWN_ERROR",
	ErrMalformedPush:                      "MALFORMED_PUSH",
	ErrInternal:                           "INTERNAL_ERROR",
	ErrUnknownError:                      "UNKNOWN_ERROR",
	errInvalidIndex:                      "UNKNOWN_ERROR",
}

func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return "UNKNOWN_ERROR"
}

// Error is the typed failure an interpreter call returns. It carries the
// offending opcode and instruction pointer when the failure was detected
// mid-execution.
type Error struct {
	ErrorCode   ErrorCode
	Description string
	Opcode      byte
	HasOpcode   bool
	Offset      int
}

func (e Error) Error() string {
	if e.HasOpcode {
		return fmt.Sprintf("%s: %s (opcode 0x%02x at %d)", e.ErrorCode, e.Description, e.Opcode, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Description)
}

func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

func (e Error) withPC(opcode byte, offset int) Error {
	e.Opcode = opcode
	e.HasOpcode = true
	e.Offset = offset
	return e
}

// IsErrorCode reports whether err is a txscript.Error carrying code c.
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	if !ok {
		return false
	}
	return serr.ErrorCode == c
}
