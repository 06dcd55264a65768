// Package pmss implements the Performance Model for Structure Selection: a
// pure decision function choosing, for a range of sorted keys about to be
// bulk-loaded, whether the range should become a learned model node or fall
// back to an embedded trie.
//
// The decision is a fixed pair of constants rather than a recomputed cost
// surface: this structure lives entirely in memory, so there is no disk
// access cost to model, only the two properties (how bunched the keys are,
// and how many of them there are) that predict whether a linear position
// model can discriminate the range well.
package pmss

// Structure names which leaf shape bulk-loading should choose for a range.
type Structure int

const (
	// UseModelNode selects a learned inner node (node.go's innerNode).
	UseModelNode Structure = iota
	// UseTrieNode selects the embedded trie (package trie).
	UseTrieNode
)

const (
	// trieGpklThreshold: a range whose group partial key length is at or
	// above this is dense in shared prefix relative to its distinguishing
	// suffixes, which a learned linear model predicts poorly; such ranges
	// are better served by a trie's explicit prefix sharing.
	trieGpklThreshold = 12.0

	// maxModelNodeSize bounds how many keys a single inner node may model;
	// beyond it the node's Item array would need to resize too often to
	// stay calibrated, so larger ranges go to a trie regardless of gpkl.
	maxModelNodeSize = 1 << 20
)

// Decide returns which leaf shape a range of size keys and group partial key
// length gpkl should use.
func Decide(size int, gpkl float64) Structure {
	if gpkl >= trieGpklThreshold || size > maxModelNodeSize {
		return UseTrieNode
	}
	return UseModelNode
}
