package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const defaultPoll = 250 * time.Millisecond

// Options controls Tail.
type Options struct {
	// Lines is the number of trailing lines printed before following.
	Lines  int
	Follow bool
	// Poll is the follow interval; zero means 250ms.
	Poll time.Duration
	// Match keeps only lines containing this substring.
	Match string
}

func (o Options) keep(line string) bool {
	return o.Match == "" || strings.Contains(line, o.Match)
}

// Tail emits the last opts.Lines matching lines of path and, when following,
// every matching line appended afterwards. A missing file is treated as empty.
// Following ends without error when ctx is cancelled.
func Tail(ctx context.Context, path string, opts Options, emit func(string) error) error {
	lines, offset, err := lastLines(path, opts)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := emit(line); err != nil {
			return err
		}
	}
	if !opts.Follow {
		return nil
	}

	poll := opts.Poll
	if poll <= 0 {
		poll = defaultPoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		size, err := fileSize(path)
		if err != nil {
			return err
		}
		if size < offset {
			offset = 0
		}
		if size == offset {
			continue
		}

		var appended []string
		appended, offset, err = readFrom(path, offset, opts)
		if err != nil {
			return err
		}
		for _, line := range appended {
			if err := emit(line); err != nil {
				return err
			}
		}
	}
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("log path %q is a directory", path)
	}
	return info.Size(), nil
}

// lastLines keeps a ring of the newest matching lines and returns them with
// the end-of-file offset.
func lastLines(path string, opts Options) ([]string, int64, error) {
	if _, err := fileSize(path); err != nil {
		return nil, 0, err
	}
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	limit := opts.Lines
	var ring []string
	if limit > 0 {
		ring = make([]string, 0, limit)
	}
	scanner := newScanner(file)
	for scanner.Scan() {
		if limit <= 0 {
			continue
		}
		line := scanner.Text()
		if !opts.keep(line) {
			continue
		}
		if len(ring) == limit {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}
	return ring, offset, nil
}

// readFrom returns complete matching lines after offset. A trailing partial
// line is left for the next read.
func readFrom(path string, offset int64, opts Options) ([]string, int64, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReader(file)
	var lines []string
	for {
		chunk, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return lines, offset, nil
		}
		if err != nil {
			return lines, offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(chunk))
		line := strings.TrimRight(chunk, "\r\n")
		if opts.keep(line) {
			lines = append(lines, line)
		}
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}
