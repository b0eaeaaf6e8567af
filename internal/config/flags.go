package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-m string   MongoDB connection URI (e.g., "mongodb://localhost:27017")
//	-d string   database name
//	-uc string  users collection name
//	-sc string  sessions collection name
//	-t int      operation timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The timeout
// flag is accepted as an integer in seconds and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-m", "-d", "-uc", "-sc", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB connection URI")
	fs.StringVar(&config.Database, "d", config.Database, "database name")
	fs.StringVar(&config.UsersCollection, "uc", config.UsersCollection, "users collection name")
	fs.StringVar(&config.SessionsCollection, "sc", config.SessionsCollection, "sessions collection name")

	operationTimeout := fs.Int("t", int(config.OperationTimeout.Seconds()), "operation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.OperationTimeout = time.Duration(*operationTimeout) * time.Second
}
