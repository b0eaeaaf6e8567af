package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.MongoURI, "mongodb://localhost:27017")
	assert.Equal(t, c.Database, "accountkeeper")
	assert.Equal(t, c.UsersCollection, "users")
	assert.Equal(t, c.SessionsCollection, "sessions")
	assert.Equal(t, c.OperationTimeout, 5*time.Second)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.MongoURI, "mongodb://localhost:27017")
	assert.Equal(t, c.Database, "accountkeeper")
	assert.Equal(t, c.UsersCollection, "users")
	assert.Equal(t, c.SessionsCollection, "sessions")
	assert.Equal(t, c.OperationTimeout, 5*time.Second)
}
