package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Convert  bool
	Heritage bool
	Dots     bool
	Codec    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Convert = boolEnv("BOX_DEBUG_CONVERT")
	d.Heritage = boolEnv("BOX_DEBUG_HERITAGE")
	d.Dots = boolEnv("BOX_DEBUG_DOTS")
	d.Codec = boolEnv("BOX_DEBUG_CODEC")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Convert traces lazy wrapping of raw values into boxes and lists.
func Convert() bool {
	return d.Convert
}

// Heritage traces write-back of default-created children.
func Heritage() bool {
	return d.Heritage
}

func Dots() bool {
	return d.Dots
}

func Codec() bool {
	return d.Codec
}
