package workspace

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

const (
	lockRetryDelay = 20 * time.Millisecond
	maxLineBytes   = 4 << 20
)

// legacyRecord is the single-file conversation format written before turn logs existed.
// Messages are decoded one by one so that a single bad message does not hide the rest.
type legacyRecord struct {
	Topic    string            `json:"topic"`
	Messages []json.RawMessage `json:"messages"`
}

// AppendTurn appends one turn to the project's turn log under a file lock.
func (s *Store) AppendTurn(ctx context.Context, user, project string, turn conversation.Turn) error {
	return s.AppendTurns(ctx, user, project, turn)
}

// AppendTurns appends turns atomically with respect to other writers of the same project.
func (s *Store) AppendTurns(ctx context.Context, user, project string, turns ...conversation.Turn) error {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encodeTurns(&buf, turns); err != nil {
		return err
	}

	return withLock(ctx, dir, func() error {
		return s.appendLocked(dir, buf.Bytes())
	})
}

// AppendAndRead appends turns and returns the conversation including them. Both happen
// under the project lock, so the result holds every turn written before this call.
func (s *Store) AppendAndRead(
	ctx context.Context, user, project string, turns ...conversation.Turn,
) (conversation.Transcript, error) {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return conversation.Transcript{}, err
	}

	var buf bytes.Buffer
	if err := encodeTurns(&buf, turns); err != nil {
		return conversation.Transcript{}, err
	}

	var out conversation.Transcript
	err = withLock(ctx, dir, func() error {
		if err := s.appendLocked(dir, buf.Bytes()); err != nil {
			return err
		}
		var err error
		out, err = s.readTranscript(dir)
		return err
	})
	return out, err
}

func (s *Store) appendLocked(dir string, data []byte) error {
	logPath := filepath.Join(dir, turnsFile)
	// The first append to a legacy project carries the legacy history over,
	// since the turn log shadows conversation.json once it exists.
	if _, err := os.Stat(logPath); errors.Is(err, fs.ErrNotExist) {
		legacy, err := s.readLegacy(filepath.Join(dir, legacyFile))
		if err == nil && len(legacy.Turns) > 0 {
			var seeded bytes.Buffer
			if err := encodeTurns(&seeded, legacy.Turns); err != nil {
				return err
			}
			seeded.Write(data)
			data = seeded.Bytes()
		}
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open turn log: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("append turn log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close turn log: %w", err)
	}
	return nil
}

// ResetTurns clears the project's conversation. The turn log is truncated rather than
// removed so that a legacy record never resurfaces after a reset.
func (s *Store) ResetTurns(ctx context.Context, user, project string) error {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return err
	}
	return withLock(ctx, dir, func() error {
		if err := os.WriteFile(filepath.Join(dir, turnsFile), nil, 0o644); err != nil {
			return fmt.Errorf("truncate turn log: %w", err)
		}
		return nil
	})
}

// ReadTurns returns the project's conversation. The turn log takes precedence over the
// legacy record; the two are never merged. Malformed records are skipped and counted.
func (s *Store) ReadTurns(_ context.Context, user, project string) (conversation.Transcript, error) {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return conversation.Transcript{}, err
	}
	return s.readTranscript(dir)
}

func (s *Store) readTranscript(dir string) (conversation.Transcript, error) {
	transcript, err := s.readTurnLog(filepath.Join(dir, turnsFile))
	if err == nil {
		return transcript, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return conversation.Transcript{}, err
	}

	transcript, err = s.readLegacy(filepath.Join(dir, legacyFile))
	if errors.Is(err, fs.ErrNotExist) {
		return conversation.Transcript{}, nil
	}
	return transcript, err
}

func (s *Store) readTurnLog(path string) (conversation.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return conversation.Transcript{}, fmt.Errorf("open turn log: %w", err)
	}
	defer f.Close()

	var out conversation.Transcript
	r := bufio.NewReaderSize(f, 64*1024)
	for line := 1; ; line++ {
		raw, tooLong, err := readLine(r, maxLineBytes)
		if err != nil && !errors.Is(err, io.EOF) {
			return conversation.Transcript{}, fmt.Errorf("read turn log: %w", err)
		}

		switch raw = bytes.TrimSpace(raw); {
		case tooLong:
			out.Skipped++
			s.logger.Debug("Skipping oversized turn", zap.String("path", path), zap.Int("line", line))
		case len(raw) == 0:
		default:
			var t conversation.Turn
			if jerr := json.Unmarshal(raw, &t); jerr != nil || !t.Role.IsValid() {
				out.Skipped++
				s.logger.Debug("Skipping malformed turn", zap.String("path", path), zap.Int("line", line))
				break
			}
			out.Turns = append(out.Turns, t)
		}

		if err != nil {
			return out, nil
		}
	}
}

// readLine returns the next line without its delimiter. A line longer than limit is
// consumed and reported as tooLong with no content.
func readLine(r *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit+1 {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return bytes.TrimSuffix(line, []byte{'\n'}), tooLong, err
	}
}

func (s *Store) readLegacy(path string) (conversation.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return conversation.Transcript{}, fmt.Errorf("read legacy record: %w", err)
	}

	out := conversation.Transcript{Legacy: true}
	var rec legacyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		out.Skipped = 1
		s.logger.Debug("Skipping malformed legacy record", zap.String("path", path), zap.Error(err))
		return out, nil
	}
	for i, raw := range rec.Messages {
		var m conversation.Turn
		if err := json.Unmarshal(raw, &m); err != nil || !m.Role.IsValid() {
			out.Skipped++
			s.logger.Debug("Skipping malformed legacy message", zap.String("path", path), zap.Int("index", i))
			continue
		}
		out.Turns = append(out.Turns, m)
	}
	return out, nil
}

func withLock(ctx context.Context, dir string, fn func() error) error {
	fl := flock.New(filepath.Join(dir, lockFile))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock turn log: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock turn log: %w", ctx.Err())
	}
	defer func() { _ = fl.Unlock() }()

	return fn()
}

func encodeTurns(buf *bytes.Buffer, turns []conversation.Turn) error {
	for _, t := range turns {
		line, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode turn: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return nil
}
