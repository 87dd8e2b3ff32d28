package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/vibeprompt/internal/config"
	"github.com/mark3labs/vibeprompt/internal/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestModesCommand(t *testing.T) {
	var out bytes.Buffer
	modesCmd.SetOut(&out)
	require.NoError(t, modesCmd.RunE(modesCmd, nil))

	for _, id := range []string{"ui", "interior", "photo", "asset"} {
		assert.Contains(t, out.String(), id)
	}
}

func TestSetupWritesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	saved := setupFlags
	t.Cleanup(func() { setupFlags = saved })
	setupFlags.project = true
	setupFlags.mode = "Interior"

	var out bytes.Buffer
	setupCmd.SetOut(&out)
	require.NoError(t, runSetup(setupCmd, nil))
	assert.Contains(t, out.String(), config.ProjectPath())

	data, err := os.ReadFile(filepath.Join(dir, config.ProjectPath()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_mode: interior")

	err = runSetup(setupCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestFirstRunHint(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Contains(t, firstRunHint(), "vibeprompt setup")

	require.NoError(t, config.WriteProject(config.Defaults()))
	assert.Empty(t, firstRunHint())
}

func TestAuthStatusReadsDotEnv(t *testing.T) {
	keyring.MockInit()
	for _, name := range credentials.EnvVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.WriteFile(".env", []byte("GEMINI_API_KEY=dotenv-key-abcd\n"), 0o600))

	var out bytes.Buffer
	authStatusCmd.SetOut(&out)
	require.NoError(t, authStatusCmd.RunE(authStatusCmd, nil))
	assert.Contains(t, out.String(), "abcd (from GEMINI_API_KEY)")
}

func TestGenerateValidatesFlags(t *testing.T) {
	saved := generateFlags
	t.Cleanup(func() { generateFlags = saved })

	tests := []struct {
		name    string
		idea    string
		style   int
		reroll  int
		wantErr string
	}{
		{name: "no input", style: 1, wantErr: "provide --idea"},
		{name: "style too high", idea: "A meditation app", style: 4, wantErr: "--style must be between 1 and 3"},
		{name: "style zero", idea: "A meditation app", style: 0, wantErr: "--style must be between 1 and 3"},
		{name: "negative reroll", idea: "A meditation app", style: 1, reroll: -1, wantErr: "--reroll must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generateFlags = saved
			generateFlags.idea = tt.idea
			generateFlags.style = tt.style
			generateFlags.reroll = tt.reroll

			err := runGenerate(generateCmd, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrintResultPlain(t *testing.T) {
	saved := generateFlags
	t.Cleanup(func() { generateFlags = saved })
	generateFlags.json = false

	var out bytes.Buffer
	require.NoError(t, printResult(&out, generateResult{FinalPrompt: "final", ImplementationPrompt: "impl"}))
	assert.Equal(t, "final\n\n---\n\nimpl\n", out.String())

	generateFlags.json = true
	out.Reset()
	require.NoError(t, printResult(&out, generateResult{Mode: "ui", FinalPrompt: "设计一款", ImplementationPrompt: "impl"}))
	assert.Contains(t, out.String(), `"final_prompt": "设计一款"`)
	assert.NotContains(t, out.String(), "saved_to")
}
