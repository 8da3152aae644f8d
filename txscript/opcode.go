// Package txscript implements the Bitcoin script interpreter: opcode table,
// stack, script number encoding, parser/serializer, script classification,
// and the execution engine, generalized from a proof-of-capacity chain's
// script dialect back to Bitcoin's consensus rules.
package txscript

import "strconv"

// Opcode values. The numbering and names follow the Bitcoin Script
// reference exactly, grouped by their push-encoding and execution
// semantics.
const (
	OP_0                   = 0x00
	OP_FALSE               = 0x00
	OP_DATA_1              = 0x01
	OP_DATA_2              = 0x02
	OP_DATA_3              = 0x03
	OP_DATA_4              = 0x04
	OP_DATA_5              = 0x05
	OP_DATA_6              = 0x06
	OP_DATA_7              = 0x07
	OP_DATA_8              = 0x08
	OP_DATA_9              = 0x09
	OP_DATA_10             = 0x0a
	OP_DATA_11             = 0x0b
	OP_DATA_12             = 0x0c
	OP_DATA_13             = 0x0d
	OP_DATA_14             = 0x0e
	OP_DATA_15             = 0x0f
	OP_DATA_16             = 0x10
	OP_DATA_17             = 0x11
	OP_DATA_18             = 0x12
	OP_DATA_19             = 0x13
	OP_DATA_20             = 0x14
	OP_DATA_21             = 0x15
	OP_DATA_22             = 0x16
	OP_DATA_23             = 0x17
	OP_DATA_24             = 0x18
	OP_DATA_25             = 0x19
	OP_DATA_26             = 0x1a
	OP_DATA_27             = 0x1b
	OP_DATA_28             = 0x1c
	OP_DATA_29             = 0x1d
	OP_DATA_30             = 0x1e
	OP_DATA_31             = 0x1f
	OP_DATA_32             = 0x20
	OP_DATA_33             = 0x21
	OP_DATA_34             = 0x22
	OP_DATA_35             = 0x23
	OP_DATA_36             = 0x24
	OP_DATA_37             = 0x25
	OP_DATA_38             = 0x26
	OP_DATA_39             = 0x27
	OP_DATA_40             = 0x28
	OP_DATA_41             = 0x29
	OP_DATA_42             = 0x2a
	OP_DATA_43             = 0x2b
	OP_DATA_44             = 0x2c
	OP_DATA_45             = 0x2d
	OP_DATA_46             = 0x2e
	OP_DATA_47             = 0x2f
	OP_DATA_48             = 0x30
	OP_DATA_49             = 0x31
	OP_DATA_50             = 0x32
	OP_DATA_51             = 0x33
	OP_DATA_52             = 0x34
	OP_DATA_53             = 0x35
	OP_DATA_54             = 0x36
	OP_DATA_55             = 0x37
	OP_DATA_56             = 0x38
	OP_DATA_57             = 0x39
	OP_DATA_58             = 0x3a
	OP_DATA_59             = 0x3b
	OP_DATA_60             = 0x3c
	OP_DATA_61             = 0x3d
	OP_DATA_62             = 0x3e
	OP_DATA_63             = 0x3f
	OP_DATA_64             = 0x40
	OP_DATA_65             = 0x41
	OP_DATA_66             = 0x42
	OP_DATA_67             = 0x43
	OP_DATA_68             = 0x44
	OP_DATA_69             = 0x45
	OP_DATA_70             = 0x46
	OP_DATA_71             = 0x47
	OP_DATA_72             = 0x48
	OP_DATA_73             = 0x49
	OP_DATA_74             = 0x4a
	OP_DATA_75             = 0x4b
	OP_PUSHDATA1           = 0x4c
	OP_PUSHDATA2           = 0x4d
	OP_PUSHDATA4           = 0x4e
	OP_1NEGATE             = 0x4f
	OP_RESERVED            = 0x50
	OP_1                   = 0x51
	OP_TRUE                = 0x51
	OP_2                   = 0x52
	OP_3                   = 0x53
	OP_4                   = 0x54
	OP_5                   = 0x55
	OP_6                   = 0x56
	OP_7                   = 0x57
	OP_8                   = 0x58
	OP_9                   = 0x59
	OP_10                  = 0x5a
	OP_11                  = 0x5b
	OP_12                  = 0x5c
	OP_13                  = 0x5d
	OP_14                  = 0x5e
	OP_15                  = 0x5f
	OP_16                  = 0x60
	OP_NOP                 = 0x61
	OP_VER                 = 0x62
	OP_IF                  = 0x63
	OP_NOTIF               = 0x64
	OP_VERIF               = 0x65
	OP_VERNOTIF            = 0x66
	OP_ELSE                = 0x67
	OP_ENDIF               = 0x68
	OP_VERIFY              = 0x69
	OP_RETURN              = 0x6a
	OP_TOALTSTACK          = 0x6b
	OP_FROMALTSTACK        = 0x6c
	OP_2DROP               = 0x6d
	OP_2DUP                = 0x6e
	OP_3DUP                = 0x6f
	OP_2OVER               = 0x70
	OP_2ROT                = 0x71
	OP_2SWAP               = 0x72
	OP_IFDUP               = 0x73
	OP_DEPTH               = 0x74
	OP_DROP                = 0x75
	OP_DUP                 = 0x76
	OP_NIP                 = 0x77
	OP_OVER                = 0x78
	OP_PICK                = 0x79
	OP_ROLL                = 0x7a
	OP_ROT                 = 0x7b
	OP_SWAP                = 0x7c
	OP_TUCK                = 0x7d
	OP_CAT                 = 0x7e
	OP_SUBSTR              = 0x7f
	OP_LEFT                = 0x80
	OP_RIGHT               = 0x81
	OP_SIZE                = 0x82
	OP_INVERT              = 0x83
	OP_AND                 = 0x84
	OP_OR                  = 0x85
	OP_XOR                 = 0x86
	OP_EQUAL               = 0x87
	OP_EQUALVERIFY         = 0x88
	OP_RESERVED1           = 0x89
	OP_RESERVED2           = 0x8a
	OP_1ADD                = 0x8b
	OP_1SUB                = 0x8c
	OP_2MUL                = 0x8d
	OP_2DIV                = 0x8e
	OP_NEGATE              = 0x8f
	OP_ABS                 = 0x90
	OP_NOT                 = 0x91
	OP_0NOTEQUAL           = 0x92
	OP_ADD                 = 0x93
	OP_SUB                 = 0x94
	OP_MUL                 = 0x95
	OP_DIV                 = 0x96
	OP_MOD                 = 0x97
	OP_LSHIFT              = 0x98
	OP_RSHIFT              = 0x99
	OP_BOOLAND             = 0x9a
	OP_BOOLOR              = 0x9b
	OP_NUMEQUAL            = 0x9c
	OP_NUMEQUALVERIFY      = 0x9d
	OP_NUMNOTEQUAL         = 0x9e
	OP_LESSTHAN            = 0x9f
	OP_GREATERTHAN         = 0xa0
	OP_LESSTHANOREQUAL     = 0xa1
	OP_GREATERTHANOREQUAL  = 0xa2
	OP_MIN                 = 0xa3
	OP_MAX                 = 0xa4
	OP_WITHIN              = 0xa5
	OP_RIPEMD160           = 0xa6
	OP_SHA1                = 0xa7
	OP_SHA256              = 0xa8
	OP_HASH160             = 0xa9
	OP_HASH256             = 0xaa
	OP_CODESEPARATOR       = 0xab
	OP_CHECKSIG            = 0xac
	OP_CHECKSIGVERIFY      = 0xad
	OP_CHECKMULTISIG       = 0xae
	OP_CHECKMULTISIGVERIFY = 0xaf
	OP_NOP1                = 0xb0
	OP_CHECKLOCKTIMEVERIFY = 0xb1
	OP_NOP2                = 0xb1
	OP_CHECKSEQUENCEVERIFY = 0xb2
	OP_NOP3                = 0xb2
	OP_NOP4                = 0xb3
	OP_NOP5                = 0xb4
	OP_NOP6                = 0xb5
	OP_NOP7                = 0xb6
	OP_NOP8                = 0xb7
	OP_NOP9                = 0xb8
	OP_NOP10               = 0xb9
	OP_UNKNOWN186          = 0xba
	OP_INVALIDOPCODE       = 0xff
)

// opcode describes one entry of the 256-entry dispatch table: its canonical
// name, the length convention (0 = single byte, >0 = fixed push length,
// negative = length is read from the next 1/2/4 bytes), and the function
// implementing its effect on the engine.
type opcode struct {
	value  byte
	name   string
	length int
	opfunc func(*parsedOpcode, *Engine) error
}

// Length conventions for variable-length pushes, matching the historical
// btcd convention of encoding "read N bytes of length prefix" as a negative
// number.
const (
	opcodeBytes1 = -1
	opcodeBytes2 = -2
	opcodeBytes4 = -4
)

var opcodeArray [256]opcode

func init() {
	opcodeArray[OP_0] = opcode{OP_0, "OP_0", 1, opcodePushData}
	for i := OP_DATA_1; i <= OP_DATA_75; i++ {
		opcodeArray[i] = opcode{byte(i), dataName(i), i + 1, opcodePushData}
	}
	opcodeArray[OP_PUSHDATA1] = opcode{OP_PUSHDATA1, "OP_PUSHDATA1", opcodeBytes1, opcodePushData}
	opcodeArray[OP_PUSHDATA2] = opcode{OP_PUSHDATA2, "OP_PUSHDATA2", opcodeBytes2, opcodePushData}
	opcodeArray[OP_PUSHDATA4] = opcode{OP_PUSHDATA4, "OP_PUSHDATA4", opcodeBytes4, opcodePushData}
	opcodeArray[OP_1NEGATE] = opcode{OP_1NEGATE, "OP_1NEGATE", 1, opcodeNegate}
	opcodeArray[OP_RESERVED] = opcode{OP_RESERVED, "OP_RESERVED", 1, opcodeReserved}
	for i := OP_1; i <= OP_16; i++ {
		opcodeArray[i] = opcode{byte(i), smallIntName(i), 1, opcodeNSmallInt}
	}
	opcodeArray[OP_NOP] = opcode{OP_NOP, "OP_NOP", 1, opcodeNop}
	opcodeArray[OP_VER] = opcode{OP_VER, "OP_VER", 1, opcodeReserved}
	opcodeArray[OP_IF] = opcode{OP_IF, "OP_IF", 1, opcodeIf}
	opcodeArray[OP_NOTIF] = opcode{OP_NOTIF, "OP_NOTIF", 1, opcodeNotIf}
	opcodeArray[OP_VERIF] = opcode{OP_VERIF, "OP_VERIF", 1, opcodeReserved}
	opcodeArray[OP_VERNOTIF] = opcode{OP_VERNOTIF, "OP_VERNOTIF", 1, opcodeReserved}
	opcodeArray[OP_ELSE] = opcode{OP_ELSE, "OP_ELSE", 1, opcodeElse}
	opcodeArray[OP_ENDIF] = opcode{OP_ENDIF, "OP_ENDIF", 1, opcodeEndif}
	opcodeArray[OP_VERIFY] = opcode{OP_VERIFY, "OP_VERIFY", 1, opcodeVerify}
	opcodeArray[OP_RETURN] = opcode{OP_RETURN, "OP_RETURN", 1, opcodeReturn}
	opcodeArray[OP_TOALTSTACK] = opcode{OP_TOALTSTACK, "OP_TOALTSTACK", 1, opcodeToAltStack}
	opcodeArray[OP_FROMALTSTACK] = opcode{OP_FROMALTSTACK, "OP_FROMALTSTACK", 1, opcodeFromAltStack}
	opcodeArray[OP_2DROP] = opcode{OP_2DROP, "OP_2DROP", 1, opcode2Drop}
	opcodeArray[OP_2DUP] = opcode{OP_2DUP, "OP_2DUP", 1, opcode2Dup}
	opcodeArray[OP_3DUP] = opcode{OP_3DUP, "OP_3DUP", 1, opcode3Dup}
	opcodeArray[OP_2OVER] = opcode{OP_2OVER, "OP_2OVER", 1, opcode2Over}
	opcodeArray[OP_2ROT] = opcode{OP_2ROT, "OP_2ROT", 1, opcode2Rot}
	opcodeArray[OP_2SWAP] = opcode{OP_2SWAP, "OP_2SWAP", 1, opcode2Swap}
	opcodeArray[OP_IFDUP] = opcode{OP_IFDUP, "OP_IFDUP", 1, opcodeIfDup}
	opcodeArray[OP_DEPTH] = opcode{OP_DEPTH, "OP_DEPTH", 1, opcodeDepth}
	opcodeArray[OP_DROP] = opcode{OP_DROP, "OP_DROP", 1, opcodeDrop}
	opcodeArray[OP_DUP] = opcode{OP_DUP, "OP_DUP", 1, opcodeDup}
	opcodeArray[OP_NIP] = opcode{OP_NIP, "OP_NIP", 1, opcodeNip}
	opcodeArray[OP_OVER] = opcode{OP_OVER, "OP_OVER", 1, opcodeOver}
	opcodeArray[OP_PICK] = opcode{OP_PICK, "OP_PICK", 1, opcodePick}
	opcodeArray[OP_ROLL] = opcode{OP_ROLL, "OP_ROLL", 1, opcodeRoll}
	opcodeArray[OP_ROT] = opcode{OP_ROT, "OP_ROT", 1, opcodeRot}
	opcodeArray[OP_SWAP] = opcode{OP_SWAP, "OP_SWAP", 1, opcodeSwap}
	opcodeArray[OP_TUCK] = opcode{OP_TUCK, "OP_TUCK", 1, opcodeTuck}
	opcodeArray[OP_CAT] = opcode{OP_CAT, "OP_CAT", 1, opcodeDisabled}
	opcodeArray[OP_SUBSTR] = opcode{OP_SUBSTR, "OP_SUBSTR", 1, opcodeDisabled}
	opcodeArray[OP_LEFT] = opcode{OP_LEFT, "OP_LEFT", 1, opcodeDisabled}
	opcodeArray[OP_RIGHT] = opcode{OP_RIGHT, "OP_RIGHT", 1, opcodeDisabled}
	opcodeArray[OP_SIZE] = opcode{OP_SIZE, "OP_SIZE", 1, opcodeSize}
	opcodeArray[OP_INVERT] = opcode{OP_INVERT, "OP_INVERT", 1, opcodeDisabled}
	opcodeArray[OP_AND] = opcode{OP_AND, "OP_AND", 1, opcodeDisabled}
	opcodeArray[OP_OR] = opcode{OP_OR, "OP_OR", 1, opcodeDisabled}
	opcodeArray[OP_XOR] = opcode{OP_XOR, "OP_XOR", 1, opcodeDisabled}
	opcodeArray[OP_EQUAL] = opcode{OP_EQUAL, "OP_EQUAL", 1, opcodeEqual}
	opcodeArray[OP_EQUALVERIFY] = opcode{OP_EQUALVERIFY, "OP_EQUALVERIFY", 1, opcodeEqualVerify}
	opcodeArray[OP_RESERVED1] = opcode{OP_RESERVED1, "OP_RESERVED1", 1, opcodeReserved}
	opcodeArray[OP_RESERVED2] = opcode{OP_RESERVED2, "OP_RESERVED2", 1, opcodeReserved}
	opcodeArray[OP_1ADD] = opcode{OP_1ADD, "OP_1ADD", 1, opcode1Add}
	opcodeArray[OP_1SUB] = opcode{OP_1SUB, "OP_1SUB", 1, opcode1Sub}
	opcodeArray[OP_2MUL] = opcode{OP_2MUL, "OP_2MUL", 1, opcodeDisabled}
	opcodeArray[OP_2DIV] = opcode{OP_2DIV, "OP_2DIV", 1, opcodeDisabled}
	opcodeArray[OP_NEGATE] = opcode{OP_NEGATE, "OP_NEGATE", 1, opcodeNegateNum}
	opcodeArray[OP_ABS] = opcode{OP_ABS, "OP_ABS", 1, opcodeAbs}
	opcodeArray[OP_NOT] = opcode{OP_NOT, "OP_NOT", 1, opcodeNot}
	opcodeArray[OP_0NOTEQUAL] = opcode{OP_0NOTEQUAL, "OP_0NOTEQUAL", 1, opcode0NotEqual}
	opcodeArray[OP_ADD] = opcode{OP_ADD, "OP_ADD", 1, opcodeAdd}
	opcodeArray[OP_SUB] = opcode{OP_SUB, "OP_SUB", 1, opcodeSub}
	opcodeArray[OP_MUL] = opcode{OP_MUL, "OP_MUL", 1, opcodeDisabled}
	opcodeArray[OP_DIV] = opcode{OP_DIV, "OP_DIV", 1, opcodeDisabled}
	opcodeArray[OP_MOD] = opcode{OP_MOD, "OP_MOD", 1, opcodeDisabled}
	opcodeArray[OP_LSHIFT] = opcode{OP_LSHIFT, "OP_LSHIFT", 1, opcodeDisabled}
	opcodeArray[OP_RSHIFT] = opcode{OP_RSHIFT, "OP_RSHIFT", 1, opcodeDisabled}
	opcodeArray[OP_BOOLAND] = opcode{OP_BOOLAND, "OP_BOOLAND", 1, opcodeBoolAnd}
	opcodeArray[OP_BOOLOR] = opcode{OP_BOOLOR, "OP_BOOLOR", 1, opcodeBoolOr}
	opcodeArray[OP_NUMEQUAL] = opcode{OP_NUMEQUAL, "OP_NUMEQUAL", 1, opcodeNumEqual}
	opcodeArray[OP_NUMEQUALVERIFY] = opcode{OP_NUMEQUALVERIFY, "OP_NUMEQUALVERIFY", 1, opcodeNumEqualVerify}
	opcodeArray[OP_NUMNOTEQUAL] = opcode{OP_NUMNOTEQUAL, "OP_NUMNOTEQUAL", 1, opcodeNumNotEqual}
	opcodeArray[OP_LESSTHAN] = opcode{OP_LESSTHAN, "OP_LESSTHAN", 1, opcodeLessThan}
	opcodeArray[OP_GREATERTHAN] = opcode{OP_GREATERTHAN, "OP_GREATERTHAN", 1, opcodeGreaterThan}
	opcodeArray[OP_LESSTHANOREQUAL] = opcode{OP_LESSTHANOREQUAL, "OP_LESSTHANOREQUAL", 1, opcodeLessThanOrEqual}
	opcodeArray[OP_GREATERTHANOREQUAL] = opcode{OP_GREATERTHANOREQUAL, "OP_GREATERTHANOREQUAL", 1, opcodeGreaterThanOrEqual}
	opcodeArray[OP_MIN] = opcode{OP_MIN, "OP_MIN", 1, opcodeMin}
	opcodeArray[OP_MAX] = opcode{OP_MAX, "OP_MAX", 1, opcodeMax}
	opcodeArray[OP_WITHIN] = opcode{OP_WITHIN, "OP_WITHIN", 1, opcodeWithin}
	opcodeArray[OP_RIPEMD160] = opcode{OP_RIPEMD160, "OP_RIPEMD160", 1, opcodeRipemd160}
	opcodeArray[OP_SHA1] = opcode{OP_SHA1, "OP_SHA1", 1, opcodeSha1}
	opcodeArray[OP_SHA256] = opcode{OP_SHA256, "OP_SHA256", 1, opcodeSha256}
	opcodeArray[OP_HASH160] = opcode{OP_HASH160, "OP_HASH160", 1, opcodeHash160}
	opcodeArray[OP_HASH256] = opcode{OP_HASH256, "OP_HASH256", 1, opcodeHash256}
	opcodeArray[OP_CODESEPARATOR] = opcode{OP_CODESEPARATOR, "OP_CODESEPARATOR", 1, opcodeCodeSeparator}
	opcodeArray[OP_CHECKSIG] = opcode{OP_CHECKSIG, "OP_CHECKSIG", 1, opcodeCheckSig}
	opcodeArray[OP_CHECKSIGVERIFY] = opcode{OP_CHECKSIGVERIFY, "OP_CHECKSIGVERIFY", 1, opcodeCheckSigVerify}
	opcodeArray[OP_CHECKMULTISIG] = opcode{OP_CHECKMULTISIG, "OP_CHECKMULTISIG", 1, opcodeCheckMultiSig}
	opcodeArray[OP_CHECKMULTISIGVERIFY] = opcode{OP_CHECKMULTISIGVERIFY, "OP_CHECKMULTISIGVERIFY", 1, opcodeCheckMultiSigVerify}
	opcodeArray[OP_NOP1] = opcode{OP_NOP1, "OP_NOP1", 1, opcodeNop}
	opcodeArray[OP_CHECKLOCKTIMEVERIFY] = opcode{OP_CHECKLOCKTIMEVERIFY, "OP_CHECKLOCKTIMEVERIFY", 1, opcodeCheckLockTimeVerify}
	opcodeArray[OP_CHECKSEQUENCEVERIFY] = opcode{OP_CHECKSEQUENCEVERIFY, "OP_CHECKSEQUENCEVERIFY", 1, opcodeCheckSequenceVerify}
	opcodeArray[OP_NOP4] = opcode{OP_NOP4, "OP_NOP4", 1, opcodeNop}
	opcodeArray[OP_NOP5] = opcode{OP_NOP5, "OP_NOP5", 1, opcodeNop}
	opcodeArray[OP_NOP6] = opcode{OP_NOP6, "OP_NOP6", 1, opcodeNop}
	opcodeArray[OP_NOP7] = opcode{OP_NOP7, "OP_NOP7", 1, opcodeNop}
	opcodeArray[OP_NOP8] = opcode{OP_NOP8, "OP_NOP8", 1, opcodeNop}
	opcodeArray[OP_NOP9] = opcode{OP_NOP9, "OP_NOP9", 1, opcodeNop}
	opcodeArray[OP_NOP10] = opcode{OP_NOP10, "OP_NOP10", 1, opcodeNop}

	for i := 0xba; i <= 0xff; i++ {
		if opcodeArray[i].name == "" {
			opcodeArray[i] = opcode{byte(i), "OP_UNKNOWN", 1, opcodeInvalid}
		}
	}
}

func dataName(i int) string {
	return "OP_DATA_" + strconv.Itoa(i-OP_DATA_1+1)
}

func smallIntName(i int) string {
	if i == OP_0 {
		return "OP_0"
	}
	return "OP_" + strconv.Itoa(i-OP_1+1)
}

// isSmallInt reports whether op is OP_0 or OP_1 through OP_16.
func isSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// asSmallInt returns the integer value of a small-int opcode.
func asSmallInt(op byte) int {
	if op == OP_0 {
		return 0
	}
	return int(op - (OP_1 - 1))
}
