package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Load  bool
	Diff  bool
	Query bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("MPK_DEBUG_LOAD")
	d.Diff = boolEnv("MPK_DEBUG_DIFF")
	d.Query = boolEnv("MPK_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Diff() bool {
	return d.Diff
}
func Query() bool {
	return d.Query
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
