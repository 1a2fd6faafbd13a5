package core

import (
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

var byteSizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatByteSize renders a binary-prefixed, human-readable size with at most
// two decimals: 0 -> "0 Bytes", 2097152 -> "2 MB", 1536 -> "1.5 KB".
func FormatByteSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if i >= len(byteSizeUnits) {
		i = len(byteSizeUnits) - 1
	}
	val := float64(size) / math.Pow(1024, float64(i))
	return strconv.FormatFloat(math.Round(val*100)/100, 'f', -1, 64) + " " + byteSizeUnits[i]
}

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the test package being run during tests...
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			// fall back to the starting directory; templates and assets
			// are then resolved relative to the caller.
			return wd
		}
		currDir = newDir
	}
}
