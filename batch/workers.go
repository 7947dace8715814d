package main

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	msgtree "github.com/next-exp/msgtree_go/pkg"
)

type WorkerResult struct {
	Path   string
	Result msgtree.Result
	Err    error
}

func worker(id int, jobs <-chan string, results chan<- WorkerResult, cache *msgtree.TreeCache) {
	for path := range jobs {
		results <- processArchive(id, path, cache)
	}
}

// processArchive decodes one archive. A panic only loses that archive.
func processArchive(id int, path string, cache *msgtree.TreeCache) (out WorkerResult) {
	out.Path = path
	defer func() {
		if r := recover(); r != nil {
			out.Result = msgtree.Result{Error: true}
			out.Err = fmt.Errorf("worker %d recovered from panic on %s: %v", id, path, r)
		}
	}()

	if VerbosityLevel > 1 {
		message := fmt.Sprintf("Worker %d processing %s", id, path)
		logger.Info(message, "worker")
	}
	archive, err := msgtree.OpenArchive(path)
	if err != nil {
		out.Result = msgtree.Result{Error: true}
		out.Err = err
		return out
	}
	out.Result, out.Err = msgtree.DecodeArchiveCached(archive, configuration.Strict, cache)
	if out.Err == nil && configuration.Verify {
		trailing, err := msgtree.Verify(out.Result)
		if err != nil {
			out.Err = err
			out.Result.Error = true
		} else if trailing > 0 && VerbosityLevel > 0 {
			message := fmt.Sprintf("%s: %d trailing bits dropped", archive.Name, trailing)
			logger.Info(message, "verify")
		}
	}
	return out
}

func sendArchivesToWorkers(paths []string, jobs chan<- string) {
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
}

// Sink receives every decoded archive in the order workers finish them.
type Sink interface {
	Save(result msgtree.Result) error
}

type summary struct {
	decoded  int
	failures map[string]error
}

// failedPaths lists the archives that could not be decoded, sorted.
func (s summary) failedPaths() []string {
	failed := maps.Keys(s.failures)
	slices.Sort(failed)
	return failed
}

func processWorkerResults(results <-chan WorkerResult, sinks []Sink, nArchives int) summary {
	s := summary{failures: make(map[string]error)}
	for processed := 0; processed < nArchives; processed++ {
		res := <-results
		if res.Err != nil || res.Result.Error {
			s.failures[res.Path] = res.Err
			logger.Error(fmt.Sprintf("discarding %s: %v", res.Path, res.Err))
			continue
		}
		for _, sink := range sinks {
			if err := sink.Save(res.Result); err != nil {
				logger.Error(fmt.Sprintf("error saving %s: %v", res.Path, err))
			}
		}
		s.decoded++
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Processed %s (%d/%d)", res.Result.Name, processed+1, nArchives)
			logger.Info(message, "main")
		}
	}
	return s
}
