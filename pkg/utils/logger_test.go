// pkg/utils/logger_test.go

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	l := GetLogger("test-logger")
	assert.Same(t, l, GetLogger("test-logger"))

	var buf bytes.Buffer
	l.SetOutput(&buf)
	SetLogLevel(logrus.WarnLevel)
	l.Infof("hidden")
	l.Warnf("chunk %d", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2} [\d:.]+ test-logger\[\d+\] <WARNING>: chunk 3\n$`, buf.String())
	SetLogLevel(logrus.InfoLevel)

	p := filepath.Join(t.TempDir(), "out.log")
	require.NoError(t, SetOutFile(p))
	l.Infof("to file")
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<INFO>: to file")
	l.SetOutput(os.Stderr)
	GetLogger("chumworld").SetOutput(os.Stderr)
}
