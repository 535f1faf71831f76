package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Lock     bool
	Snapshot bool
	Build    bool
	Diff     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lock = boolEnv("MORF_DEBUG_LOCK")
	d.Snapshot = boolEnv("MORF_DEBUG_SNAPSHOT")
	d.Build = boolEnv("MORF_DEBUG_BUILD")
	d.Diff = boolEnv("MORF_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lock() bool {
	return d.Lock
}
func Snapshot() bool {
	return d.Snapshot
}
func Build() bool {
	return d.Build
}
func Diff() bool {
	return d.Diff
}
