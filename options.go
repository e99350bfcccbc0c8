package slidegrade

import (
	"go.uber.org/zap"

	"github.com/tsawler/slidegrade/internal/deckcache"
	"github.com/tsawler/slidegrade/score"
)

// gradeOptions holds configuration for grading.
type gradeOptions struct {
	score  score.Options
	logger *zap.Logger

	// Parsed presentation cache; nil parses every file on each call
	cache *deckcache.Cache
}

// defaultOptions returns the default grading options.
func defaultOptions() gradeOptions {
	return gradeOptions{
		score:  score.DefaultOptions(),
		logger: zap.NewNop(),
	}
}

// clone creates a copy of gradeOptions. The logger and cache are shared.
func (o gradeOptions) clone() gradeOptions {
	return gradeOptions{
		score:  o.score,
		logger: o.logger,
		cache:  o.cache,
	}
}
