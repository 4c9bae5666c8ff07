package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var b bytes.Buffer
	l, err := New(&b, "info", "text")
	require.NoError(t, err)

	l.WithField("name", "Array1").Info("constructor allocated elements")
	l.Debug("hidden")

	assert.Contains(t, b.String(), "msg=constructor allocated elements")
	assert.Contains(t, b.String(), "name=Array1")
	assert.NotContains(t, b.String(), "hidden")
}

func TestNewJSON(t *testing.T) {
	var b bytes.Buffer
	l, err := New(&b, "debug", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("len", 3).Debug("fill")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &rec))
	assert.Equal(t, "fill", rec["msg"])
	assert.EqualValues(t, 3, rec["len"])
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
