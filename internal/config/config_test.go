package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate moves the test into a temp dir with its own XDG_CONFIG_HOME and
// no VIBEPROMPT_ variables.
func isolate(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv(EnvName(key), "")
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/vibeprompt/vibeprompt.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
			want:      ".config/vibeprompt/vibeprompt.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			got := GlobalPath()
			if tt.xdgConfig != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if !strings.HasSuffix(got, tt.want) {
				t.Errorf("GlobalPath() = %v, want suffix %v", got, tt.want)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "vibeprompt.yml" {
		t.Errorf("ProjectPath() = %v, want vibeprompt.yml", got)
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("max_image_bytes"); got != "VIBEPROMPT_MAX_IMAGE_BYTES" {
		t.Errorf("EnvName() = %v", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := WriteProject(Defaults()); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
	_ = os.Remove(ProjectPath())

	if err := WriteGlobal(Defaults()); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when global config exists")
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Model:          "gemini-2.5-pro",
		DefaultMode:    "asset",
		SkipModeSelect: true,
		Timeout:        90 * time.Second,
		MaxImageBytes:  1024,
		ExportDir:      "out",
		LogLevel:       "debug",
		LogFile:        "/tmp/test.log",
	}
	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{
		"model: gemini-2.5-pro",
		"default_mode: asset",
		"skip_mode_select: true",
		"timeout: 1m30s",
		"max_image_bytes: 1024",
		"export_dir: out",
		"log_level: debug",
		"log_file: /tmp/test.log",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Defaults()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, *want)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Defaults()
	global.Model = "global/model"
	global.DefaultMode = "photo"
	global.LogLevel = "warn"
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	// Project file overrides only what it names.
	if err := os.WriteFile(ProjectPath(), []byte("default_mode: interior\ntimeout: 2m\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	t.Setenv("VIBEPROMPT_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model != "global/model" {
		t.Errorf("Model = %v, want global/model", cfg.Model)
	}
	if cfg.DefaultMode != "interior" {
		t.Errorf("DefaultMode = %v, want interior (project)", cfg.DefaultMode)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug (env)", cfg.LogLevel)
	}
}

func TestLoad_EnvTypes(t *testing.T) {
	isolate(t)

	t.Setenv("VIBEPROMPT_SKIP_MODE_SELECT", "true")
	t.Setenv("VIBEPROMPT_MAX_IMAGE_BYTES", "4096")
	t.Setenv("VIBEPROMPT_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.SkipModeSelect {
		t.Error("SkipModeSelect = false, want true")
	}
	if cfg.MaxImageBytes != 4096 {
		t.Errorf("MaxImageBytes = %v, want 4096", cfg.MaxImageBytes)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)

	// godotenv does not override variables that are already present.
	_ = os.Unsetenv("VIBEPROMPT_EXPORT_DIR")
	t.Cleanup(func() { _ = os.Unsetenv("VIBEPROMPT_EXPORT_DIR") })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("VIBEPROMPT_EXPORT_DIR=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ExportDir != "from-dotenv" {
		t.Errorf("ExportDir = %v, want from-dotenv", cfg.ExportDir)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("LoadDotEnv() error = %v, want nil for a missing file", err)
	}
}

func TestLoad_InvalidProjectConfig(t *testing.T) {
	isolate(t)

	if err := os.WriteFile(ProjectPath(), []byte("model: [unclosed\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for malformed YAML")
	}
}
