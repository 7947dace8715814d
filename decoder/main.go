package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	sqlx "github.com/jmoiron/sqlx"
	msgtree "github.com/next-exp/msgtree_go/pkg"
	"github.com/next-exp/msgtree_go/pkg/logging"
)

var dbConn *sqlx.DB
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
	strict := flag.Bool("strict", false, "Fail on a message ending in the middle of a code")
	flag.Parse()

	var err error
	configuration, err = msgtree.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		configuration.FileIn = flag.Arg(0)
	}
	if *strict {
		configuration.Strict = true
	}
	msgtree.SetConfiguration(configuration)
	msgtree.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		msgtree.PrintConfiguration(configuration, logger)
	}

	if configuration.UseDB || configuration.SaveDB {
		dbConn, err = msgtree.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connection to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()
	}

	if err := run(); err != nil {
		logger.Error(err.Error())
		if dbConn != nil {
			dbConn.Close()
		}
		os.Exit(1)
	}
}

func run() error {
	archive, err := readArchive()
	if err != nil {
		return err
	}

	result, err := msgtree.DecodeArchive(archive, configuration.Strict)
	if err != nil {
		return err
	}
	printResult(result)

	if configuration.WriteData {
		if err := writeResult(result); err != nil {
			return err
		}
	}
	if configuration.SaveDB {
		if err := msgtree.SaveResultToDB(dbConn, result); err != nil {
			return fmt.Errorf("error saving result to database: %w", err)
		}
	}
	return nil
}

func printResult(result msgtree.Result) {
	if configuration.PrintCodes {
		msgtree.PrintCodes(os.Stdout, result.Codes)
	}
	if configuration.PrintMessage {
		fmt.Println("-----------------------\nMessage:")
		fmt.Println(result.Message)
	}
	msgtree.PrintStatistics(os.Stdout, result.Stats)
}

func writeResult(result msgtree.Result) error {
	writer, err := msgtree.NewWriter(configuration.FileOut)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if err := writer.WriteResult(&result); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
