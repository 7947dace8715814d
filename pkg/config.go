package msgtree

import (
	"encoding/json"
	"fmt"
	"os"
)

type Configuration struct {
	Verbosity        int    `json:"verbosity"`
	FileIn           string `json:"file_in"`
	FileOut          string `json:"file_out"`
	Archive          string `json:"archive"`
	Strict           bool   `json:"strict"`
	PrintCodes       bool   `json:"print_codes"`
	PrintMessage     bool   `json:"print_message"`
	UseDB            bool   `json:"use_db"`
	SaveDB           bool   `json:"save_db"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
	NumWorkers       int    `json:"num_workers"`
	WriteData        bool   `json:"write_data"`
	CompressionLevel int    `json:"compression_level"`
	StoreDir         string `json:"store_dir"`
	CacheSize        int    `json:"cache_size"`
	Verify           bool   `json:"verify"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

func DefaultConfiguration() Configuration {
	var config Configuration

	config.Verbosity = 0
	config.Strict = false
	config.PrintCodes = true
	config.PrintMessage = true
	config.UseDB = false
	config.SaveDB = false
	config.Host = "localhost"
	config.User = "msgtree"
	config.Passwd = "msgtree"
	config.DBName = "ARCHIVES"
	config.NumWorkers = 1
	config.WriteData = false
	config.CompressionLevel = 4
	config.CacheSize = 128
	config.Verify = false
	return config
}

// LoadConfiguration reads a JSON configuration file on top of the defaults.
// An empty filename returns the defaults.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func PrintConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Archive: %s", config.Archive), "config")
	logger.Info(fmt.Sprintf("Strict: %t", config.Strict), "config")
	logger.Info(fmt.Sprintf("Use DB: %t", config.UseDB), "config")
	logger.Info(fmt.Sprintf("Save DB: %t", config.SaveDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Store dir: %s", config.StoreDir), "config")
	logger.Info(fmt.Sprintf("Cache size: %d", config.CacheSize), "config")
	logger.Info(fmt.Sprintf("Verify: %t", config.Verify), "config")
}
