package repository

const (
	defaultShardCount = 16
	defaultFormWindow = 5
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithShardCount sets how many independently locked shards the store
// uses. Values below one fall back to a single shard.
func WithShardCount(n int) Option {
	return func(m *MemoryStore) {
		if n >= 1 {
			m.shardCount = n
		}
	}
}

// WithFormWindow sets how many recent matches feed the form average.
func WithFormWindow(n int) Option {
	return func(m *MemoryStore) {
		if n >= 1 {
			m.formWindow = n
		}
	}
}
