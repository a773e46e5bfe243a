package convert

import (
	"log/slog"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/llamashift/llamashift/format"
)

// outputFactor approximates the converted tree plus converter scratch space
// relative to the raw shard bytes.
const outputFactor = 2.1

// CheckDiskSpace reports whether the filesystem holding path looks large
// enough for the converted output, logging a warning when it does not.
// Advisory only: callers proceed either way, and an unreadable filesystem
// counts as enough.
func CheckDiskSpace(path string, shardBytes int64) bool {
	usage, err := disk.Usage(path)
	if err != nil {
		slog.Debug("disk usage unavailable", "path", path, "error", err)
		return true
	}

	required := uint64(float64(shardBytes) * outputFactor)
	if usage.Free < required {
		slog.Warn("low disk space for conversion",
			"path", path,
			"free", format.HumanBytes(int64(usage.Free)),
			"required", format.HumanBytes(int64(required)))
		return false
	}

	return true
}
