package testutil

// FixedRunID returns a run-ID source that yields the same token every time.
//
// Production reports get a fresh UUID per run; tests inject a fixed token so
// report snapshots are byte-identical across runs and safe for golden file
// comparison.
func FixedRunID(token string) func() string {
	if token == "" {
		token = "test-run-default"
	}
	return func() string { return token }
}
