package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Serial bool
	Codec  bool
	Store  bool
	Save   bool
	Watch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Serial = boolEnv("DOCFILE_DEBUG_SERIAL")
	d.Codec = boolEnv("DOCFILE_DEBUG_CODEC")
	d.Store = boolEnv("DOCFILE_DEBUG_STORE")
	d.Save = boolEnv("DOCFILE_DEBUG_SAVE")
	d.Watch = boolEnv("DOCFILE_DEBUG_WATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Serial() bool {
	return d.Serial
}
func Codec() bool {
	return d.Codec
}
func Store() bool {
	return d.Store
}
func Save() bool {
	return d.Save
}
func Watch() bool {
	return d.Watch
}
