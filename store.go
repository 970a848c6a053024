package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Xnetter/datastructures-and-algos/linkedlist"
)

// store maps keys to lists. Lists aren't safe for concurrent
// use, so every command runs with lock held.
type store struct {
	lock         sync.Mutex
	lists        map[string]*linkedlist.List
	snapshotPath string
}

// `newStore` returns an instance of `store`
func newStore(snapshotPath string) *store {
	return &store{
		lists:        make(map[string]*linkedlist.List),
		snapshotPath: snapshotPath,
	}
}

// `list` returns the list stored at key, creating it if needed
func (s *store) list(key string) *linkedlist.List {
	l, ok := s.lists[key]
	if !ok {
		l = linkedlist.New()
		s.lists[key] = l
	}
	return l
}

// `save` dumps every list to the snapshot file, one
// quoted key and its rendering per line. The file is
// replaced atomically.
func (s *store) save() error {
	if s.snapshotPath == "" {
		return errNoSnapshot
	}
	keys := make([]string, 0, len(s.lists))
	for key := range s.lists {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tmp, err := os.CreateTemp(filepath.Dir(s.snapshotPath), ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	for _, key := range keys {
		fmt.Fprintf(writer, "%s\t%s\n", strconv.Quote(key), s.lists[key])
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.snapshotPath)
}

// `load` reads the snapshot file written by `save`. A
// missing file leaves the store empty.
func (s *store) load() error {
	file, err := os.Open(s.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		quoted, rendering, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("%s:%d: %w", s.snapshotPath, lineNo, errSnapshotLine)
		}
		key, err := strconv.Unquote(quoted)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", s.snapshotPath, lineNo, errSnapshotLine)
		}
		l, err := linkedlist.Parse(rendering)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", s.snapshotPath, lineNo, err)
		}
		s.lists[key] = l
	}
	return scanner.Err()
}
