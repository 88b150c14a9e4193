package biz

import (
	"context"
	"strings"

	"github.com/kart-io/logger"

	"github.com/unlistededge/voicegate/internal/gateway/store"
	"github.com/unlistededge/voicegate/internal/model"
	knowledgeopts "github.com/unlistededge/voicegate/pkg/options/knowledge"
)

// Fallback answers returned to the voice agent when the knowledge base
// cannot produce a confident reply.
const (
	answerNoResults   = "I don't have specific information about that. Let me connect you with our investment advisor for detailed information."
	answerLowScore    = "I found some related information, but I'd recommend speaking with our advisor for accurate details."
	answerUnavailable = "I'm having trouble accessing that information right now. Let me note your question and have an advisor call you back."
)

// Embedder turns a query into a vector.
type Embedder interface {
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
}

// Retriever answers questions from the knowledge base.
type Retriever struct {
	embedder Embedder
	vs       store.VectorStore
	opts     *knowledgeopts.Options
}

// NewRetriever creates a knowledge retriever.
func NewRetriever(embedder Embedder, vs store.VectorStore, opts *knowledgeopts.Options) *Retriever {
	return &Retriever{
		embedder: embedder,
		vs:       vs,
		opts:     opts,
	}
}

// Search embeds the query and returns the topK nearest chunks. Any
// embedding or storage failure yields an empty result, never an error;
// the caller falls back to an advisor handoff.
func (r *Retriever) Search(ctx context.Context, query string) []*store.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	embedding, err := r.embedder.EmbedSingle(ctx, query)
	if err != nil {
		logger.Errorw("Failed to embed query", "error", err)
		return nil
	}

	results, err := r.vs.Search(ctx, r.opts.Collection, embedding, r.opts.TopK)
	if err != nil {
		logger.Errorw("Knowledge search failed", "collection", r.opts.Collection, "error", err)
		return nil
	}
	return results
}

// Answer runs a search and composes a conversational reply from it.
func (r *Retriever) Answer(ctx context.Context, query string) model.Answer {
	return r.ComposeAnswer(r.Search(ctx, query))
}

// ComposeAnswer builds a reply from search results. Only results scoring
// above the confidence threshold contribute; the top snippets are joined
// into a single utterance. Confidence is the best raw score.
func (r *Retriever) ComposeAnswer(results []*store.SearchResult) model.Answer {
	if len(results) == 0 {
		return model.Answer{Text: answerNoResults}
	}

	confident := make([]string, 0, len(results))
	for _, res := range results {
		if res.Score > r.opts.ConfidenceThreshold {
			confident = append(confident, res.Text)
		}
	}

	if len(confident) == 0 {
		return model.Answer{Text: answerLowScore}
	}

	snippets := confident
	if len(snippets) > r.opts.MaxSnippets {
		snippets = snippets[:r.opts.MaxSnippets]
	}

	return model.Answer{
		Text:        strings.Join(snippets, " "),
		Confidence:  results[0].Score,
		SourcesUsed: len(confident),
	}
}

// UnavailableAnswer is the reply used when the knowledge base is down.
func UnavailableAnswer() model.Answer {
	return model.Answer{Text: answerUnavailable}
}
