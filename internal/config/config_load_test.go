package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to set os.Args for testing
func setArgs(args []string) {
	os.Args = args
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("MCP_DOCFILL_MODE")
	os.Unsetenv("MCP_DOCFILL_HOST")
	os.Unsetenv("MCP_DOCFILL_PORT")
	os.Unsetenv("MCP_DOCFILL_DIR")
	os.Unsetenv("MCP_DOCFILL_OUTDIR")
	os.Unsetenv("MCP_DOCFILL_LOGLEVEL")
	os.Unsetenv("MCP_DOCFILL_MAXFILESIZE")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	outDir := t.TempDir()
	setArgs([]string{"mcp-docfill", "--dir=" + tempDir, "--outdir=" + outDir})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "stdio")
	}
	if cfg.Host != "127.0.0.1" {
		t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, "127.0.0.1")
	}
	if cfg.Port != 8080 {
		t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, 8080)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	if cfg.TemplateDirectory != tempDir {
		t.Errorf("LoadFromFlags() TemplateDirectory = %v, want %v", cfg.TemplateDirectory, tempDir)
	}
	if cfg.OutputDirectory != outDir {
		t.Errorf("LoadFromFlags() OutputDirectory = %v, want %v", cfg.OutputDirectory, outDir)
	}
	if len(cfg.SignatureKeywords) != 1 || cfg.SignatureKeywords[0] != "signature" {
		t.Errorf("LoadFromFlags() SignatureKeywords = %v, want [signature]", cfg.SignatureKeywords)
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	outDir := t.TempDir()
	setArgs([]string{
		"mcp-docfill",
		"--mode=server",
		"--host=0.0.0.0",
		"--port=9000",
		"--dir=" + tempDir,
		"--outdir=" + outDir,
		"--loglevel=debug",
		"--maxfilesize=5242880",
		"--sigkeywords=signature,witness",
		"--sigtokens=SELLER:,BUYER:",
	})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "server" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "server")
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, "0.0.0.0")
	}
	if cfg.Port != 9000 {
		t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, 9000)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "debug")
	}
	if cfg.MaxFileSize != 5242880 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 5242880)
	}
	if len(cfg.SignatureKeywords) != 2 || cfg.SignatureKeywords[1] != "witness" {
		t.Errorf("LoadFromFlags() SignatureKeywords = %v, want [signature witness]", cfg.SignatureKeywords)
	}
	if len(cfg.SignatureTokens) != 2 || cfg.SignatureTokens[0] != "SELLER:" {
		t.Errorf("LoadFromFlags() SignatureTokens = %v, want [SELLER: BUYER:]", cfg.SignatureTokens)
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	outDir := t.TempDir()

	os.Setenv("MCP_DOCFILL_MODE", "server")
	os.Setenv("MCP_DOCFILL_HOST", "192.168.1.1")
	os.Setenv("MCP_DOCFILL_PORT", "3000")
	os.Setenv("MCP_DOCFILL_DIR", tempDir)
	os.Setenv("MCP_DOCFILL_OUTDIR", outDir)
	os.Setenv("MCP_DOCFILL_LOGLEVEL", "warn")
	os.Setenv("MCP_DOCFILL_MAXFILESIZE", "200000000")

	setArgs([]string{"mcp-docfill"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "server" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "server")
	}
	if cfg.Host != "192.168.1.1" {
		t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, "192.168.1.1")
	}
	if cfg.Port != 3000 {
		t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, 3000)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "warn")
	}
	if cfg.MaxFileSize != 200000000 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 200000000)
	}
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	outDir := t.TempDir()

	os.Setenv("MCP_DOCFILL_MODE", "server")
	os.Setenv("MCP_DOCFILL_HOST", "192.168.1.1")
	os.Setenv("MCP_DOCFILL_PORT", "3000")

	setArgs([]string{
		"mcp-docfill",
		"--mode=stdio", "--host=localhost", "--port=8888",
		"--dir=" + tempDir, "--outdir=" + outDir,
	})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v (should override env)", cfg.Mode, "stdio")
	}
	if cfg.Host != "localhost" {
		t.Errorf("LoadFromFlags() Host = %v, want %v (should override env)", cfg.Host, "localhost")
	}
	if cfg.Port != 8888 {
		t.Errorf("LoadFromFlags() Port = %v, want %v (should override env)", cfg.Port, 8888)
	}
}

func TestLoadFromFlags_InvalidMode(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"mcp-docfill", "--mode=invalid", "--dir=" + t.TempDir(), "--outdir=" + t.TempDir()})
	resetFlags()
	clearEnvVars()

	if _, err := LoadFromFlags(); err == nil {
		t.Error("LoadFromFlags() expected error for invalid mode")
	}
}

func TestLoadFromFlags_InvalidPort(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{
		"mcp-docfill", "--mode=server", "--port=99999",
		"--dir=" + t.TempDir(), "--outdir=" + t.TempDir(),
	})
	resetFlags()
	clearEnvVars()

	if _, err := LoadFromFlags(); err == nil {
		t.Error("LoadFromFlags() expected error for invalid port")
	}
}

func TestLoadFromFlags_InvalidLogLevel(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{
		"mcp-docfill", "--loglevel=noisy",
		"--dir=" + t.TempDir(), "--outdir=" + t.TempDir(),
	})
	resetFlags()
	clearEnvVars()

	if _, err := LoadFromFlags(); err == nil {
		t.Error("LoadFromFlags() expected error for invalid log level")
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"mcp-docfill", "--version"})
	resetFlags()
	clearEnvVars()

	if _, err := LoadFromFlags(); err == nil {
		t.Error("LoadFromFlags() expected error when version flag is set")
	}
}
