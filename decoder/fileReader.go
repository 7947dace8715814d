package main

import (
	"errors"
	"fmt"

	msgtree "github.com/next-exp/msgtree_go/pkg"
)

// readArchive loads the archive from the database when configured to, from
// the input file otherwise.
func readArchive() (msgtree.Archive, error) {
	if configuration.UseDB {
		if configuration.Archive == "" {
			return msgtree.Archive{}, errors.New("no archive name given to read from database")
		}
		return msgtree.LoadArchiveFromDB(dbConn, configuration.Archive)
	}

	if configuration.FileIn == "" {
		return msgtree.Archive{}, errors.New("no input file given")
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading archive %s", configuration.FileIn)
		logger.Info(message, "fileReader")
	}
	return msgtree.OpenArchive(configuration.FileIn)
}
