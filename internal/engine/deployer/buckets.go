package deployer

import (
	"context"
	"fmt"

	"go.trai.ch/faasbench/internal/core/domain"
)

// Buckets are the input and output buckets of a benchmark.
type Buckets struct {
	Input  []string `mapstructure:"input"`
	Output []string `mapstructure:"output"`
}

// Serialize returns the cache representation of the buckets.
func (b Buckets) Serialize() map[string]any {
	return map[string]any{
		"input":  toAny(b.Input),
		"output": toAny(b.Output),
	}
}

// PrepareBuckets returns inputs input and outputs output buckets of benchmark.
// Cached buckets are reused when their count matches, the others are created
// or reused at the provider and written back.
func (s *System) PrepareBuckets(ctx context.Context, benchmark string, inputs, outputs int) (Buckets, error) {
	st, err := s.Storage()
	if err != nil {
		return Buckets{}, err
	}

	path := domain.NewKeyPath(s.Provider(), domain.CategoryStorage, benchmark)
	blob, found, err := s.cache.Get(path)
	if err != nil {
		return Buckets{}, err
	}
	if found {
		var cached Buckets
		if err := domain.DecodeTree(blob, &cached); err == nil &&
			len(cached.Input) == inputs && len(cached.Output) == outputs {
			s.logger.Info(fmt.Sprintf("using cached buckets of %s", benchmark))
			return cached, nil
		}
	}

	var buckets Buckets
	for i := range inputs {
		name, err := st.CreateOrReuseBucket(ctx, fmt.Sprintf("%s-%d-input", benchmark, i))
		if err != nil {
			return Buckets{}, err
		}
		buckets.Input = append(buckets.Input, name)
	}
	for i := range outputs {
		name, err := st.CreateOrReuseBucket(ctx, fmt.Sprintf("%s-%d-output", benchmark, i))
		if err != nil {
			return Buckets{}, err
		}
		buckets.Output = append(buckets.Output, name)
	}

	if err := s.cache.Set(path, buckets.Serialize()); err != nil {
		return Buckets{}, err
	}
	return buckets, nil
}

func toAny(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
