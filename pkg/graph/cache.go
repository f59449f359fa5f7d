package graph

import "os"

// ensureCacheDir creates dir (and any missing parents) if it does
// not already exist. Content under dir is owned by the concrete node
// variant; the core only guarantees the directory exists (spec 6).
func ensureCacheDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
