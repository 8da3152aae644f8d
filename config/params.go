// Package config defines the network parameters that parameterize the
// consensus rules: genesis block, subsidy schedule, deployment heights, and
// address-encoding magics. Uses package-level registration maps populated
// by Register, a Checkpoint type, and a literal default Params, the shape
// carried over from a proof-of-capacity chain's fields
// to Bitcoin's.
package config

import (
	"time"

	"github.com/massconsensus/btccore/wire"
)

var (
	pubKeyHashAddrIDs    = make(map[byte]struct{})
	scriptHashAddrIDs    = make(map[byte]struct{})
	bech32SegwitPrefixes = make(map[string]struct{})
)

// Checkpoint identifies a known-good block at a given height, used to reject
// deep reorganizations through it without full validation.
type Checkpoint struct {
	Height uint64
	Hash   *wire.Hash
}

// Deployment describes the activation height of a versionbits-gated
// consensus rule change (BIP9-style, but expressed directly as a height
// rather than a median-time-past window, since this library validates
// non-contextually and leaves signaling to its caller).
type Deployment struct {
	Name   string
	Height uint64
}

// Params defines a Bitcoin-derived network by its consensus parameters.
// Library code should take a *Params explicitly rather than reach for a
// package-level default, so the same binary can validate against more than
// one network; Register exists only to let address-decoding helpers that
// don't carry a Params recognize which network a given prefix byte belongs
// to.
type Params struct {
	Name        string
	DefaultPort string
	DNSSeeds    []string

	// Chain parameters.
	GenesisBlock           *wire.MsgBlock
	GenesisHash            *wire.Hash
	SubsidyHalvingInterval uint64

	// Consensus rule activation heights. A zero height means "always
	// active"; BIP34, BIP65 and BIP66 each have their own height.
	BIP34Height    uint64
	BIP65Height    uint64
	BIP66Height    uint64
	SegwitHeight   uint64
	Deployments    []Deployment

	// Checkpoints, ordered oldest to newest.
	Checkpoints []Checkpoint

	// Human-readable part for Bech32-encoded segwit addresses (BIP173).
	Bech32HRPSegwit string

	// Address-encoding magics.
	PubKeyHashAddrID       byte // first byte of a P2PKH address
	ScriptHashAddrID       byte // first byte of a P2SH address
	PrivateKeyID           byte // first byte of a WIF private key
	WitnessPubKeyHashAddrID byte
	WitnessScriptHashAddrID byte
}

// Register records params's address-prefix bytes so IsPubKeyHashAddrID and
// IsScriptHashAddrID recognize them across every registered network, the way
// a network-parameter registry conventionally does.
func Register(params *Params) error {
	pubKeyHashAddrIDs[params.PubKeyHashAddrID] = struct{}{}
	scriptHashAddrIDs[params.ScriptHashAddrID] = struct{}{}
	bech32SegwitPrefixes[params.Bech32HRPSegwit+"1"] = struct{}{}
	return nil
}

// IsPubKeyHashAddrID reports whether id prefixes a P2PKH address on any
// registered network.
func IsPubKeyHashAddrID(id byte) bool {
	_, ok := pubKeyHashAddrIDs[id]
	return ok
}

// IsScriptHashAddrID reports whether id prefixes a P2SH address on any
// registered network.
func IsScriptHashAddrID(id byte) bool {
	_, ok := scriptHashAddrIDs[id]
	return ok
}

// IsBech32SegwitPrefix reports whether prefix is a known segwit
// human-readable part across any registered network.
func IsBech32SegwitPrefix(prefix string) bool {
	_, ok := bech32SegwitPrefixes[prefix]
	return ok
}

func newHashFromStr(hexStr string) *wire.Hash {
	h, err := wire.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return h
}

var genesisMerkleRoot = *newHashFromStr(
	"4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")

var genesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  wire.Hash{},
		MerkleRoot: genesisMerkleRoot,
		Timestamp:  time.Unix(1231006505, 0),
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	},
}

var genesisHash = *newHashFromStr(
	"000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f")

// MainNetParams defines the parameters for Bitcoin's main network.
var MainNetParams = Params{
	Name:        "mainnet",
	DefaultPort: "8333",
	DNSSeeds:    []string{"seed.bitcoin.sipa.be", "dnsseed.bluematt.me"},

	GenesisBlock:           &genesisBlock,
	GenesisHash:            &genesisHash,
	SubsidyHalvingInterval: 210000,

	BIP34Height:  227931,
	BIP65Height:  388381,
	BIP66Height:  363725,
	SegwitHeight: 481824,
	Deployments: []Deployment{
		{Name: "csv", Height: 419328},
		{Name: "segwit", Height: 481824},
	},

	Checkpoints: []Checkpoint{
		{11111, newHashFromStr("0000000069e244f73d78e8fd29ba2fd2ed618bd6fa2ee92559f542fdb26e7c1d")},
		{33333, newHashFromStr("000000002dd5588a74784eaa7ab0507a18ad16a236e7b1ce69f00d7ddfb5d0a6")},
		{210000, newHashFromStr("000000000000048b95347e83192f69cf0366076336c639f9b7228e9ba171342e")},
	},

	Bech32HRPSegwit: "bc",

	PubKeyHashAddrID:        0x00,
	ScriptHashAddrID:        0x05,
	PrivateKeyID:            0x80,
	WitnessPubKeyHashAddrID: 0x06,
	WitnessScriptHashAddrID: 0x0A,
}

func init() {
	Register(&MainNetParams)
}
