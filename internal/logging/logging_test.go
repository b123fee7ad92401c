package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dschema/internal/config"
)

func TestSetup_WritesToFile(t *testing.T) {
	prevOut, prevLevel := log.StandardLogger().Out, log.GetLevel()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "dschema.log")
	closer, err := Setup(config.Log{Level: "warn", File: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.WithField("seq", 3).Warn("visible")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
	assert.Contains(t, string(data), "seq=3")
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	_, err := Setup(config.Log{Level: "chatty", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}
