package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "bizdesk", cmd.Use)
	assert.Contains(t, cmd.Long, "audit log")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"login", "logout", "whoami", "product", "sale", "expense", "user", "logs", "report", "data", "settings"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestSubcommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	paths := [][]string{
		{"product", "list"}, {"product", "show"}, {"product", "add"}, {"product", "update"}, {"product", "delete"}, {"product", "top"},
		{"sale", "list"}, {"sale", "show"}, {"sale", "create"}, {"sale", "delete"},
		{"expense", "list"}, {"expense", "add"}, {"expense", "update"}, {"expense", "delete"},
		{"user", "list"}, {"user", "add"}, {"user", "update"}, {"user", "delete"},
		{"logs", "list"}, {"logs", "export"}, {"logs", "clear"},
		{"report", "financial"}, {"report", "stock"}, {"report", "sales"}, {"report", "profit"},
		{"data", "export"}, {"data", "import"}, {"data", "clear"}, {"data", "clear-cache"},
		{"settings", "show"}, {"settings", "set"},
	}

	for _, path := range paths {
		subCmd, _, err := cmd.Find(path)
		require.NoError(t, err, "Command %v should exist", path)
		assert.Equal(t, path[1], subCmd.Name())
	}
}

func TestCommandAliases(t *testing.T) {
	cmd := NewRootCommand()
	subCmd, _, err := cmd.Find([]string{"products", "list"})
	require.NoError(t, err)
	assert.Equal(t, "list", subCmd.Name())
	assert.Equal(t, "product", subCmd.Parent().Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	for _, name := range []string{"db", "backend"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue, "%s falls back to the config file", name)
	}
}

func TestLoginCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	loginCmd, _, err := cmd.Find([]string{"login"})
	require.NoError(t, err)

	passwordFlag := loginCmd.Flags().Lookup("password")
	require.NotNil(t, passwordFlag)
	assert.Equal(t, "p", passwordFlag.Shorthand)
}

func TestSaleCreateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	createCmd, _, err := cmd.Find([]string{"sale", "create"})
	require.NoError(t, err)

	itemFlag := createCmd.Flags().Lookup("item")
	require.NotNil(t, itemFlag)
	assert.Equal(t, "i", itemFlag.Shorthand)
	assert.Equal(t, "stringArray", itemFlag.Value.Type())
}

func TestListCommandDefaults(t *testing.T) {
	cmd := NewRootCommand()

	topCmd, _, err := cmd.Find([]string{"product", "top"})
	require.NoError(t, err)
	assert.Equal(t, "5", topCmd.Flags().Lookup("limit").DefValue)

	logsCmd, _, err := cmd.Find([]string{"logs", "list"})
	require.NoError(t, err)
	assert.Equal(t, "50", logsCmd.Flags().Lookup("limit").DefValue)

	exportCmd, _, err := cmd.Find([]string{"data", "export"})
	require.NoError(t, err)
	assert.Equal(t, "products", exportCmd.Flags().Lookup("collection").DefValue)
}

func TestReportDateFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"financial", "sales", "profit"} {
		reportCmd, _, err := cmd.Find([]string{"report", name})
		require.NoError(t, err)
		assert.NotNil(t, reportCmd.Flags().Lookup("from"), name)
		assert.NotNil(t, reportCmd.Flags().Lookup("to"), name)
	}

	stockCmd, _, err := cmd.Find([]string{"report", "stock"})
	require.NoError(t, err)
	assert.Nil(t, stockCmd.Flags().Lookup("from"), "stock is a snapshot")
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "whoami"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}
