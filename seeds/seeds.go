// Package seeds reads, writes and precomputes quad witch hut base seeds.
//
// A base seed file holds one decimal seed per line in strictly ascending
// order.
package seeds

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Read parses a base seed list and checks its ordering.
func Read(r io.Reader) ([]int64, error) {
	var ret []int64
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n := len(ret); n > 0 && v <= ret[n-1] {
			return nil, fmt.Errorf("line %d: seed %d not above previous seed %d", line, v, ret[n-1])
		}
		ret = append(ret, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func Load(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ret, nil
}

func Write(w io.Writer, seeds []int64) error {
	bw := bufio.NewWriter(w)
	var line []byte
	for _, s := range seeds {
		line = strconv.AppendInt(line[:0], s, 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes seeds to path, creating its directory if needed.
func Save(path string, seeds []int64) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, seeds); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Ensure loads the base seed file, first computing it with find when it does
// not exist yet.
func Ensure(path string, find func() []int64, log *slog.Logger) ([]int64, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Warn("base seed file does not exist, creating a new one; this may take a few minutes", "file", path)
		if err := Save(path, find()); err != nil {
			return nil, fmt.Errorf("save base seeds: %w", err)
		}
	} else if err != nil {
		return nil, err
	}
	return Load(path)
}

// StartIndex returns the index of the first candidate not below start.
func StartIndex(candidates []int64, start int64) int {
	i := 0
	for i < len(candidates) && candidates[i] < start {
		i++
	}
	return i
}
