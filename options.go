package lits

import "github.com/schencoding/lits/hpt"

// Option configures an Index at construction time, in the functional-
// options style.
type Option interface {
	apply(*Index)
}

type optionFunc func(*Index)

func (f optionFunc) apply(idx *Index) { f(idx) }

// WithPretrainedHPT supplies an already-trained position model, skipping
// the training pass Bulkload would otherwise run over its input keys. Use
// this to reuse a model trained on a representative sample across several
// indexes sharing a key distribution.
func WithPretrainedHPT(model *hpt.Table) Option {
	return optionFunc(func(idx *Index) {
		idx.model = model
		idx.pretrained = true
	})
}

// WithMinBulkLoadSize overrides the default floor (1000) below which
// Bulkload refuses its input as too small to justify a learned structure.
func WithMinBulkLoadSize(n int) Option {
	return optionFunc(func(idx *Index) {
		idx.minBulkLoadSize = n
	})
}
