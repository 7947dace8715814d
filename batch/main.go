package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	msgtree "github.com/next-exp/msgtree_go/pkg"
	"github.com/next-exp/msgtree_go/pkg/logging"
	"golang.org/x/exp/slices"
)

var configuration msgtree.Configuration

var (
	logger         logging.Logger
	VerbosityLevel int
)

func init() {
	logger = logging.New(os.Stdout, os.Stderr, slog.LevelDebug)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	pattern := flag.String("in", "", "Glob of archives to decode, e.g. 'archives/**/*.arch'")
	flag.Parse()

	var err error
	configuration, err = msgtree.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *pattern != "" {
		configuration.FileIn = *pattern
	}
	if configuration.NumWorkers < 1 {
		configuration.NumWorkers = 1
	}
	msgtree.SetConfiguration(configuration)
	msgtree.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		msgtree.PrintConfiguration(configuration, logger)
	}

	paths, err := findArchives(configuration.FileIn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of archives: %d", len(paths))
		logger.Info(message, "main")
	}

	sinks, closeSinks, err := openSinks()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	start := time.Now()
	cache := msgtree.NewTreeCache(configuration.CacheSize)
	jobs := make(chan string, 100)
	results := make(chan WorkerResult, 100)

	for w := 1; w <= configuration.NumWorkers; w++ {
		go worker(w, jobs, results, cache)
	}
	go sendArchivesToWorkers(paths, jobs)

	s := processWorkerResults(results, sinks, len(paths))
	if err := closeSinks(); err != nil {
		logger.Error(err.Error())
	}

	hits, misses := cache.Stats()
	logger.Info(fmt.Sprintf("Decoded %d of %d archives in %d ms", s.decoded, len(paths), time.Since(start).Milliseconds()), "main")
	logger.Info(fmt.Sprintf("Tree cache: %d hits, %d misses", hits, misses), "main")
	if len(s.failures) > 0 {
		for _, path := range s.failedPaths() {
			logger.Error(fmt.Sprintf("failed %s: %v", path, s.failures[path]))
		}
		os.Exit(1)
	}
}

// findArchives expands pattern, which may use '**', keeping only archive files.
func findArchives(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("no input pattern given")
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("error expanding %q: %w", pattern, err)
	}
	paths := slices.DeleteFunc(matches, func(path string) bool {
		return !msgtree.IsArchivePath(path)
	})
	slices.Sort(paths)
	return paths, nil
}

func openSinks() ([]Sink, func() error, error) {
	var sinks []Sink
	var closers []func() error
	closeAll := func() error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	if configuration.WriteData {
		writer, err := msgtree.NewWriter(configuration.FileOut)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, writerSink{writer: writer})
		closers = append(closers, writer.Close)
	}
	if configuration.StoreDir != "" {
		store, err := msgtree.OpenResultStore(configuration.StoreDir)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, storeSink{store: store})
		closers = append(closers, store.Close)
	}
	if configuration.SaveDB {
		db, err := msgtree.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("Error connection to database: %w", err)
		}
		sinks = append(sinks, dbSink{db: db})
		closers = append(closers, db.Close)
	}
	return sinks, closeAll, nil
}
