// Package vectorindex implements the sparse term-weighted text index
// backing semantic search within one layer.
//
// The vocabulary and inverse document frequencies are fixed when the
// index is built; query terms outside the vocabulary contribute zero
// weight. There is no re-training at query time.
package vectorindex

import (
	"log/slog"
	"math"
	"strings"
	"unicode"

	"github.com/soundprediction/strata/pkg/types"
	"github.com/soundprediction/strata/pkg/utils"
)

// Result is a single similarity hit.
type Result struct {
	NodeID     string
	Similarity float64
}

type document struct {
	nodeID string
	vector utils.SparseVector
}

// Index is a read-only TF-IDF vector space over one layer's corpus.
type Index struct {
	layer types.LayerID
	vocab map[string]int
	idf   []float64
	docs  []document
}

// Build constructs the index from the text-bearing nodes of a layer.
// Nodes whose SearchText is empty are excluded from the corpus.
func Build(layer types.LayerID, nodes []*types.Node, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}

	idx := &Index{layer: layer, vocab: make(map[string]int)}

	type rawDoc struct {
		nodeID string
		counts map[string]int
	}
	var raw []rawDoc
	docFreq := make(map[string]int)

	for _, n := range nodes {
		text := n.SearchText()
		if text == "" {
			continue
		}
		counts := termCounts(Tokenize(text))
		raw = append(raw, rawDoc{nodeID: n.ID, counts: counts})
		for term := range counts {
			docFreq[term]++
			if _, ok := idx.vocab[term]; !ok {
				idx.vocab[term] = len(idx.vocab)
			}
		}
	}

	// Smoothed idf stays positive even for terms present in every
	// document, so an exact-text query always matches its own node.
	n := float64(len(raw))
	idx.idf = make([]float64, len(idx.vocab))
	for term, i := range idx.vocab {
		idx.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	for _, d := range raw {
		vec := make(utils.SparseVector, len(d.counts))
		for term, count := range d.counts {
			i := idx.vocab[term]
			vec[i] = float64(count) * idx.idf[i]
		}
		idx.docs = append(idx.docs, document{nodeID: d.nodeID, vector: vec})
	}

	logger.Debug("vector index built",
		"layer", layer, "corpus_size", len(idx.docs), "vocabulary", len(idx.vocab))
	return idx
}

// Layer returns the layer this index belongs to.
func (idx *Index) Layer() types.LayerID { return idx.layer }

// CorpusSize returns the number of indexed documents.
func (idx *Index) CorpusSize() int { return len(idx.docs) }

// VocabularySize returns the number of distinct indexed terms.
func (idx *Index) VocabularySize() int { return len(idx.vocab) }

// Search vectorizes text against the fixed vocabulary and returns the
// top-K cosine-similarity matches above the configured minimum score,
// in descending similarity order. An empty corpus yields a nil result
// with StatusNoData; an out-of-vocabulary query yields an empty result
// with StatusSuccess.
func (idx *Index) Search(text string, cfg *types.SearchConfig) ([]Result, types.LayerStatus) {
	if idx == nil || len(idx.docs) == 0 {
		return nil, types.StatusNoData
	}
	cfg = cfg.WithDefaults()

	query := idx.vectorize(text)
	if len(query) == 0 {
		return []Result{}, types.StatusSuccess
	}

	scored := make([]utils.ScoredItem[string], 0, len(idx.docs))
	for _, doc := range idx.docs {
		sim := utils.SparseCosineSimilarity(query, doc.vector)
		if sim >= cfg.MinScore {
			scored = append(scored, utils.ScoredItem[string]{Item: doc.nodeID, Score: sim})
		}
	}

	top := utils.TopKByScore(scored, cfg.TopK)
	results := make([]Result, 0, len(top))
	for _, item := range top {
		results = append(results, Result{NodeID: item.Item, Similarity: item.Score})
	}
	return results, types.StatusSuccess
}

func (idx *Index) vectorize(text string) utils.SparseVector {
	counts := termCounts(Tokenize(text))
	vec := make(utils.SparseVector)
	for term, count := range counts {
		i, ok := idx.vocab[term]
		if !ok {
			continue
		}
		vec[i] = float64(count) * idx.idf[i]
	}
	return vec
}

// Tokenize lowercases text and splits it on any non-alphanumeric rune.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}
