// Package policy decides whether a ranked candidate is good enough to be
// returned or the fixed fallback answer should be used instead.
package policy

import "searchbot/internal/domain"

const (
	// FallbackResponse is returned when no candidate is accepted.
	FallbackResponse = "亲爱哒，还有什么小妹可以帮您呢~"
	// SentinelScore marks responses that were not ranked locally.
	SentinelScore = 2.0
)

// Default acceptance thresholds. BM25 scores are not normalized, so its
// threshold sits above the [0,1] range of the other strategies.
const (
	DefaultBM25Threshold   = 1.0
	DefaultTFIDFThreshold  = 0.7
	DefaultOneHotThreshold = 0.5
	DefaultVectorThreshold = DefaultTFIDFThreshold
)

// Thresholds holds the per-strategy acceptance limits.
type Thresholds struct {
	BM25   float64 `yaml:"bm25"`
	TFIDF  float64 `yaml:"tfidf"`
	OneHot float64 `yaml:"onehot"`
	Vector float64 `yaml:"vector"`
}

// DefaultThresholds returns the canonical limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BM25:   DefaultBM25Threshold,
		TFIDF:  DefaultTFIDFThreshold,
		OneHot: DefaultOneHotThreshold,
		Vector: DefaultVectorThreshold,
	}
}

// Policy applies the acceptance rule of one strategy.
type Policy struct {
	strategy  domain.Strategy
	threshold float64
}

// New returns the policy for strategy using t.
func New(strategy domain.Strategy, t Thresholds) *Policy {
	p := &Policy{strategy: strategy}
	switch strategy {
	case domain.StrategyBM25:
		p.threshold = t.BM25
	case domain.StrategyOneHot:
		p.threshold = t.OneHot
	case domain.StrategyVector:
		p.threshold = t.Vector
	default:
		p.threshold = t.TFIDF
	}
	return p
}

// Threshold returns the active limit.
func (p *Policy) Threshold() float64 { return p.threshold }

// Accept reports whether score clears the limit. BM25 requires a strictly
// greater score; the normalized strategies accept the limit itself.
func (p *Policy) Accept(score float64) bool {
	if p.strategy == domain.StrategyBM25 {
		return score > p.threshold
	}
	return score >= p.threshold
}

// Fallback returns the fixed fallback answer and its sentinel score.
func Fallback() (string, float64) { return FallbackResponse, SentinelScore }
