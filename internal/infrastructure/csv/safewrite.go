package csv

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	apperrors "courtledger/internal/shared/errors"
)

// acquireLock creates a sidecar <file>.lock with O_EXCL, retrying on
// contention. The lock is advisory: after the retry budget is spent the
// caller proceeds anyway with a warning (fail-open). The returned release
// func is always safe to call.
func (s *Store) acquireLock(path string) func() {
	lockPath := path + ".lock"
	attempts := s.cfg.LockAttempts
	if attempts <= 0 {
		attempts = 12
	}
	acquired := false
	for i := 0; i < attempts; i++ {
		fd, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fd.Close()
			acquired = true
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			break
		}
		time.Sleep(s.cfg.LockDelay())
	}
	if !acquired {
		s.log.Warn("could not acquire lockfile, continuing unlocked", "lock", lockPath)
		return func() {}
	}
	return func() {
		if err := os.Remove(lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("removing lockfile failed", "lock", lockPath, "error", err)
		}
	}
}

// readRows reads every row of a CSV file, header included. Rows of uneven
// width are accepted; a missing file yields no rows and no error.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// appendRow appends one row under the advisory lock, retrying the whole
// operation on permission errors (the file open in a spreadsheet program)
// before surfacing a user-actionable error.
func (s *Store) appendRow(path string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	retries := s.cfg.WriteRetries
	if retries <= 0 {
		retries = 3
	}
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		err := func() error {
			release := s.acquireLock(path)
			defer release()

			f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			w := csv.NewWriter(f)
			if err := w.Write(row); err != nil {
				return err
			}
			w.Flush()
			return w.Error()
		}()
		if err == nil {
			s.bumpGeneration()
			return nil
		}
		lastErr = err
		if !errors.Is(err, fs.ErrPermission) {
			return err
		}
		time.Sleep(s.cfg.WriteRetryDelay())
	}
	return apperrors.NewFileLockedError(
		"cannot write data file, it may be open in another program; close it and retry",
		lastErr.Error())
}

// rewriteAll writes every row to a temp file beside the target and renames
// it over the original, under the advisory lock. The original is untouched
// unless the temp file was written completely.
func (s *Store) rewriteAll(path string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rewriteAllLocked(path, rows)
}

func (s *Store) rewriteAllLocked(path string, rows [][]string) error {
	retries := s.cfg.WriteRetries
	if retries <= 0 {
		retries = 3
	}
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		err := func() error {
			release := s.acquireLock(path)
			defer release()
			return writeTempAndReplace(path, rows)
		}()
		if err == nil {
			s.bumpGeneration()
			return nil
		}
		lastErr = err
		if !errors.Is(err, fs.ErrPermission) {
			return err
		}
		time.Sleep(s.cfg.WriteRetryDelay())
	}
	return apperrors.NewFileLockedError(
		"cannot rewrite data file, it may be open in another program; close it and retry",
		lastErr.Error())
}

func writeTempAndReplace(path string, rows [][]string) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
