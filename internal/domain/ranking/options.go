package ranking

// Option configures a Ranker.
type Option func(*Ranker)

// WithParallelism bounds how many candidates are scored at once. Values below
// 2 score serially.
func WithParallelism(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.parallelism = n
		}
	}
}
