// Package strata builds and queries a three-layer knowledge engine over
// normalized research, investor and founder records.
//
// Each layer pairs a typed directed multigraph with a sparse
// text-similarity index. Layers are built once into an immutable
// snapshot and published atomically; weighted multi-layer queries
// combine cosine-similarity retrieval with graph-structure analysis
// and correlate the same real-world entity across layers.
package strata
