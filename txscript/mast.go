package txscript

import (
	"bytes"

	"github.com/massconsensus/btccore/ecc"
	"github.com/massconsensus/btccore/wire"
)

// verifyMASTProgram validates a v1 witness program as a Merkle-authenticated
// subscript tree, gated on the MAST flag.
//
// The witness, top to bottom, carries: a metadata byte per tree level, a
// position byte per tree level, the sibling hashes of the Merkle branch
// (leaf to root), the subscript body, and finally whatever arguments the
// subscript itself consumes. metadata and posdata must have the same
// length, which fixes the branch's depth; this implementation resolves
// the ambiguity noted in the source material by indexing metadata and
// posdata by the same loop variable j as the sibling path, not by the
// branch's overall position -- conflating the two would silently
// miscompute the root for any tree deeper than one level.
//
// Each level's hash folds in that level's metadata byte as a domain
// separator, so a subscript committed at one depth cannot be replayed as
// though it sat at another. A subscript whose serialized body exceeds a
// single witness push can be split by the spender across multiple
// concatenated bytes within that one witness element; this verifier does
// not itself split or join multiple witness elements into one subscript.
func (vm *Engine) verifyMASTProgram(witness [][]byte) error {
	if len(vm.witnessProgram) != 32 {
		return scriptError(ErrWitnessProgramWrongLength, "length is invalid for witness program version 1")
	}
	if len(witness) < 3 {
		return scriptError(ErrWitnessProgramWitnessEmpty, "MAST witness program requires metadata, position, and a subscript")
	}

	metadata := witness[len(witness)-1]
	posdata := witness[len(witness)-2]
	depth := len(metadata)
	if depth != len(posdata) {
		return scriptError(ErrWitnessProgramMismatch, "MAST metadata and position arrays must have equal length")
	}

	pathStart := len(witness) - 2 - depth
	if pathStart < 1 {
		return scriptError(ErrWitnessProgramMismatch, "MAST witness is missing merkle path elements")
	}
	path := witness[pathStart : len(witness)-2]
	subscriptBytes := witness[pathStart-1]
	initialStack := witness[:pathStart-1]

	current := ecc.Hash256(subscriptBytes)
	for j := 0; j < depth; j++ {
		sibling := path[j]
		if len(sibling) != 32 {
			return scriptError(ErrWitnessProgramMismatch, "MAST merkle path element has the wrong length")
		}

		node := make([]byte, 0, 1+64)
		node = append(node, metadata[j])
		if posdata[j]&1 == 0 {
			node = append(node, current...)
			node = append(node, sibling...)
		} else {
			node = append(node, sibling...)
			node = append(node, current...)
		}
		current = ecc.Hash256(node)
	}

	if !bytes.Equal(current, vm.witnessProgram) {
		return scriptError(ErrWitnessProgramMismatch, "MAST merkle root mismatch")
	}

	pops, err := parseScript(subscriptBytes)
	if err != nil {
		return err
	}
	vm.scripts = append(vm.scripts, pops)
	vm.sigVersion = wire.SigVersionWitness
	vm.SetStack(initialStack)

	for _, elem := range vm.GetStack() {
		if len(elem) > maxScriptElementSize {
			return scriptError(ErrPushSize, "witness stack element exceeds maximum size")
		}
	}
	return nil
}
