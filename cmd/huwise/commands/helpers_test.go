package commands

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwise-io/huwise-client/pkg/huwise"
)

func TestParseFieldArgs(t *testing.T) {
	fields, err := parseFieldArgs([]string{"title=Air Quality", "language=en"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Air Quality", "language": "en"}, fields)
}

func TestParseFieldArgs_ValueWithEquals(t *testing.T) {
	fields, err := parseFieldArgs([]string{"formula=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"formula": "a=b"}, fields)
}

func TestParseFieldArgs_Invalid(t *testing.T) {
	_, err := parseFieldArgs([]string{"missing-separator"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")

	_, err = parseFieldArgs([]string{"=no-key"})
	require.Error(t, err)
}

func TestParseFieldArgs_Empty(t *testing.T) {
	fields, err := parseFieldArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestNewClient_MissingConfig(t *testing.T) {
	viper.Reset()

	defer viper.Reset()

	_, err := newClient()
	require.Error(t, err)
	assert.ErrorIs(t, err, huwise.ErrAPIKeyRequired)
}

func TestDatasetsCommandStructure(t *testing.T) {
	cmd := NewDatasetsCommand()
	assert.Equal(t, "datasets", cmd.Use)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"list", "get", "set", "publish"}, names)
}

func TestBulkCommandStructure(t *testing.T) {
	cmd := NewBulkCommand()
	assert.Equal(t, "bulk", cmd.Use)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"metadata", "update", "ids"}, names)
}

func TestBulkUpdateSpecFileParsing(t *testing.T) {
	cmd := NewBulkCommand()

	update, _, err := cmd.Find([]string{"update"})
	require.NoError(t, err)
	assert.NotNil(t, update.Flags().Lookup("file"))
	assert.NotNil(t, update.Flags().Lookup("no-publish"))
	assert.NotNil(t, update.Flags().Lookup("concurrency"))
}
