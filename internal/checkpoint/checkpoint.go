// Package checkpoint reads and writes the gzip-compressed halt files
// a run leaves behind when it is interrupted before finishing: the
// counts accumulated so far, and the positions of every polycube that
// was mid-exploration at the moment of the halt, so a later run can
// pick each of them back up instead of starting over.
package checkpoint

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/maemo32/polycubes/internal/enum"
	"github.com/maemo32/polycubes/internal/errs"
	"github.com/maemo32/polycubes/internal/polycube"
)

const endMarker = "--end--"

// Checkpoint is the decoded contents of a halt file.
type Checkpoint struct {
	N              int
	SpawnN         int
	ElapsedSeconds float64
	Counts         enum.Counts
	Frontier       [][]polycube.Pos
}

// FileName builds the conventional halt file name for size n at time t.
func FileName(n int, t time.Time) string {
	return fmt.Sprintf("halt-n%d-%s.txt.gz", n, t.Format("20060102T150405"))
}

// Write encodes ckpt to path as a gzip-compressed text file, creating
// or truncating it. It wraps every I/O failure in errs.ErrCheckpointWrite.
func Write(path string, ckpt Checkpoint) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return fmt.Errorf("create checkpoint file: %w: %v", errs.ErrCheckpointWrite, ferr)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close checkpoint file: %w: %v", errs.ErrCheckpointWrite, cerr)
		}
	}()

	gz := gzip.NewWriter(f)
	defer func() {
		if cerr := gz.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("flush checkpoint gzip stream: %w: %v", errs.ErrCheckpointWrite, cerr)
		}
	}()

	w := bufio.NewWriter(gz)
	fmt.Fprintln(w, ckpt.N)
	fmt.Fprintln(w, ckpt.SpawnN)
	fmt.Fprintln(w, strconv.FormatFloat(ckpt.ElapsedSeconds, 'f', -1, 64))

	pairs := make([]string, 0, len(ckpt.Counts))
	for k, c := range ckpt.Counts {
		pairs = append(pairs, fmt.Sprintf("%d=%d", k, c))
	}
	fmt.Fprintln(w, strings.Join(pairs, ","))

	for _, shape := range ckpt.Frontier {
		parts := make([]string, len(shape))
		for i, pos := range shape {
			parts[i] = strconv.Itoa(int(pos))
		}
		fmt.Fprintln(w, strings.Join(parts, ","))
	}
	fmt.Fprintln(w, endMarker)

	if ferr := w.Flush(); ferr != nil {
		return fmt.Errorf("write checkpoint body: %w: %v", errs.ErrCheckpointWrite, ferr)
	}
	return nil
}

// Read decodes a checkpoint file written by Write, wrapping every I/O
// or parse failure in errs.ErrResumeFile.
func Read(path string) (Checkpoint, error) {
	var ckpt Checkpoint

	f, err := os.Open(path)
	if err != nil {
		return ckpt, fmt.Errorf("open resume file: %w: %v", errs.ErrResumeFile, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return ckpt, fmt.Errorf("open resume file gzip stream: %w: %v", errs.ErrResumeFile, err)
	}
	defer gz.Close()

	sc := bufio.NewScanner(gz)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lines := make([]string, 0, 8)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return ckpt, fmt.Errorf("scan resume file: %w: %v", errs.ErrResumeFile, err)
	}
	if len(lines) < 4 {
		return ckpt, fmt.Errorf("resume file has too few lines: %w", errs.ErrResumeFile)
	}
	if lines[len(lines)-1] != endMarker {
		return ckpt, fmt.Errorf("resume file missing %q terminator: %w", endMarker, errs.ErrResumeFile)
	}

	ckpt.N, err = strconv.Atoi(lines[0])
	if err != nil {
		return ckpt, fmt.Errorf("parse n: %w: %v", errs.ErrResumeFile, err)
	}
	ckpt.SpawnN, err = strconv.Atoi(lines[1])
	if err != nil {
		return ckpt, fmt.Errorf("parse spawn_n: %w: %v", errs.ErrResumeFile, err)
	}
	ckpt.ElapsedSeconds, err = strconv.ParseFloat(lines[2], 64)
	if err != nil {
		return ckpt, fmt.Errorf("parse elapsed seconds: %w: %v", errs.ErrResumeFile, err)
	}

	for _, pair := range strings.Split(lines[3], ",") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return ckpt, fmt.Errorf("malformed count pair %q: %w", pair, errs.ErrResumeFile)
		}
		k, err := strconv.Atoi(kv[0])
		if err != nil || k < 0 || k >= len(ckpt.Counts) {
			return ckpt, fmt.Errorf("malformed count index %q: %w", kv[0], errs.ErrResumeFile)
		}
		v, err := strconv.ParseUint(kv[1], 10, 64)
		if err != nil {
			return ckpt, fmt.Errorf("malformed count value %q: %w", kv[1], errs.ErrResumeFile)
		}
		ckpt.Counts[k] = v
	}

	for _, line := range lines[4 : len(lines)-1] {
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		shape := make([]polycube.Pos, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return ckpt, fmt.Errorf("malformed position %q: %w", f, errs.ErrResumeFile)
			}
			shape[i] = polycube.Pos(v)
		}
		ckpt.Frontier = append(ckpt.Frontier, shape)
	}

	return ckpt, nil
}
