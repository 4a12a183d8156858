package driver

import (
	"crypto/sha256"
	"slices"
	"strconv"
	"strings"

	"epslint/internal/lint"
	"epslint/internal/version"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// combineDigest: H(content || part1 || 0 || part2 || 0 ...). parts are already in deterministic order.
func combineDigest(content [32]byte, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// levelsKey renders cfg independent of the order names were given in.
func levelsKey(cfg lint.LevelConfig) string {
	norm := func(names []string) string {
		s := slices.Clone(names)
		slices.Sort(s)
		return strings.Join(slices.Compact(s), ",")
	}
	return "allow=" + norm(cfg.Allow) + ";warn=" + norm(cfg.Warn) + ";deny=" + norm(cfg.Deny)
}

// passesKey lists the registered lints so a registry change invalidates entries.
func passesKey(reg *lint.Registry) string {
	passes := reg.All()
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Lint().Name
	}
	return strings.Join(names, ",")
}

// cacheKey covers everything a file's diagnostics depend on: its content,
// the tool version, the registered lints, the level overrides and the
// per-file diagnostic cap.
func cacheKey(content [32]byte, reg *lint.Registry, levels lint.LevelConfig, maxDiagnostics int) Digest {
	return combineDigest(content, version.Version, passesKey(reg), levelsKey(levels), strconv.Itoa(max(maxDiagnostics, 0)))
}
