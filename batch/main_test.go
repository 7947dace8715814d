package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	msgtree "github.com/next-exp/msgtree_go/pkg"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindArchives(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.arch"), "^ab\n01\n")
	writeFile(t, filepath.Join(dir, "nested", "deeper", "a.arch"), "^ab\n10\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "^ab\n10\n")

	paths, err := findArchives(filepath.Join(dir, "**", "*"))
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		filepath.Join(dir, "b.arch"),
		filepath.Join(dir, "nested", "deeper", "a.arch"),
	}
	if len(paths) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, paths)
	}
	for i := range paths {
		if paths[i] != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], paths[i])
		}
	}
}

type memorySink struct {
	saved []msgtree.Result
}

func (s *memorySink) Save(result msgtree.Result) error {
	s.saved = append(s.saved, result)
	return nil
}

func TestWorkers(t *testing.T) {
	configuration = msgtree.DefaultConfiguration()
	configuration.Verify = true

	dir := t.TempDir()
	good := filepath.Join(dir, "monogram.arch")
	bad := filepath.Join(dir, "broken.arch")
	writeFile(t, good, "^a^^!^dc^rb\n0111110010110101001111100100\n")
	writeFile(t, bad, "^a\n01\n")
	paths := []string{good, bad}

	cache := msgtree.NewTreeCache(4)
	jobs := make(chan string, len(paths))
	results := make(chan WorkerResult, len(paths))
	for w := 1; w <= 2; w++ {
		go worker(w, jobs, results, cache)
	}
	go sendArchivesToWorkers(paths, jobs)

	sink := &memorySink{}
	s := processWorkerResults(results, []Sink{sink}, len(paths))

	if s.decoded != 1 || len(sink.saved) != 1 {
		t.Fatalf("expected one decoded archive, got %d", s.decoded)
	}
	if sink.saved[0].Message != "abracadabra!" {
		t.Errorf("unexpected message %q", sink.saved[0].Message)
	}
	if err := s.failures[bad]; !errors.Is(err, msgtree.ErrMalformedTreeSpec) {
		t.Errorf("expected ErrMalformedTreeSpec for %s, got %v", bad, err)
	}
}

func TestFailedPaths(t *testing.T) {
	s := summary{failures: map[string]error{
		"c.arch":    msgtree.ErrMissingMessage,
		"a.arch":    msgtree.ErrMalformedTreeSpec,
		"b.arch.xz": nil,
	}}

	failed := s.failedPaths()
	expected := []string{"a.arch", "b.arch.xz", "c.arch"}
	if len(failed) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, failed)
	}
	for i := range expected {
		if failed[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, failed)
			break
		}
	}
}
