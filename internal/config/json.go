package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/flagx"
	"github.com/dmitrijs2005/accountkeeper/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	MongoURI           string         `json:"mongo_uri"`
	Database           string         `json:"database"`
	UsersCollection    string         `json:"users_collection"`
	SessionsCollection string         `json:"sessions_collection"`
	OperationTimeout   timex.Duration `json:"operation_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.MongoURI = c.MongoURI
	config.Database = c.Database
	config.UsersCollection = c.UsersCollection
	config.SessionsCollection = c.SessionsCollection
	config.OperationTimeout = time.Duration(c.OperationTimeout.Duration)
}
