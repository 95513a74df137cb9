// Package settings provides configuration loading for scribe.
//
// Settings live in .scribe/settings.json at the repository root, with
// per-developer overrides in .scribe/settings.local.json (not committed).
// Loaded settings are passed explicitly to the components that need them;
// nothing in this package keeps process-wide mutable state.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/scribedev/scribe/cmd/scribe/cli/jsonutil"
	"github.com/scribedev/scribe/cmd/scribe/cli/paths"
)

// DefaultModel is the inference model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// APIKeyEnvVar holds the inference API key.
const APIKeyEnvVar = "GEMINI_API_KEY"

// Settings represents the .scribe/settings.json configuration.
type Settings struct {
	// Model is the inference model used for message generation.
	Model string `json:"model,omitempty"`

	// Emoji enables emoji decoration of generated messages.
	Emoji bool `json:"emoji,omitempty"`

	// Budget overrides the digest character budget. Zero means the default.
	Budget int `json:"budget,omitempty"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	// Can be overridden by the SCRIBE_LOG_LEVEL environment variable.
	LogLevel string `json:"log_level,omitempty"`

	// Telemetry controls anonymous usage analytics.
	// nil = not asked yet, true = opted in, false = opted out
	Telemetry *bool `json:"telemetry,omitempty"`
}

// Load loads settings from .scribe/settings.json, then applies overrides
// from .scribe/settings.local.json if it exists. Returns defaults when
// neither file exists. Works from any subdirectory within the repository.
func Load() (*Settings, error) {
	settingsFileAbs, err := paths.AbsPath(paths.SettingsFileName)
	if err != nil {
		settingsFileAbs = paths.SettingsFileName
	}
	localFileAbs, err := paths.AbsPath(paths.SettingsLocalFileName)
	if err != nil {
		localFileAbs = paths.SettingsLocalFileName
	}

	settings, err := loadFromFile(settingsFileAbs)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	localData, err := os.ReadFile(localFileAbs)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading local settings file: %w", err)
		}
	} else {
		if err := mergeJSON(settings, localData); err != nil {
			return nil, fmt.Errorf("merging local settings: %w", err)
		}
	}

	applyDefaults(settings)

	return settings, nil
}

// loadFromFile loads settings from a specific file path.
// Returns default settings if the file doesn't exist.
func loadFromFile(filePath string) (*Settings, error) {
	settings := &Settings{
		Model: DefaultModel,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("%w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	applyDefaults(settings)

	return settings, nil
}

// mergeJSON merges JSON data into existing settings.
// Only fields present in the JSON override existing settings.
func mergeJSON(settings *Settings, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	if modelRaw, ok := raw["model"]; ok {
		var m string
		if err := json.Unmarshal(modelRaw, &m); err != nil {
			return fmt.Errorf("parsing model field: %w", err)
		}
		if m != "" {
			settings.Model = m
		}
	}

	if emojiRaw, ok := raw["emoji"]; ok {
		var e bool
		if err := json.Unmarshal(emojiRaw, &e); err != nil {
			return fmt.Errorf("parsing emoji field: %w", err)
		}
		settings.Emoji = e
	}

	if budgetRaw, ok := raw["budget"]; ok {
		var b int
		if err := json.Unmarshal(budgetRaw, &b); err != nil {
			return fmt.Errorf("parsing budget field: %w", err)
		}
		if b > 0 {
			settings.Budget = b
		}
	}

	if logLevelRaw, ok := raw["log_level"]; ok {
		var ll string
		if err := json.Unmarshal(logLevelRaw, &ll); err != nil {
			return fmt.Errorf("parsing log_level field: %w", err)
		}
		if ll != "" {
			settings.LogLevel = ll
		}
	}

	if telemetryRaw, ok := raw["telemetry"]; ok {
		var t bool
		if err := json.Unmarshal(telemetryRaw, &t); err != nil {
			return fmt.Errorf("parsing telemetry field: %w", err)
		}
		settings.Telemetry = &t
	}

	return nil
}

func applyDefaults(settings *Settings) {
	if settings.Model == "" {
		settings.Model = DefaultModel
	}
}

// Save writes settings to .scribe/settings.json at the repository root,
// creating the directory as needed.
func Save(settings *Settings) error {
	settingsFileAbs, err := paths.AbsPath(paths.SettingsFileName)
	if err != nil {
		settingsFileAbs = paths.SettingsFileName
	}

	if err := os.MkdirAll(filepath.Dir(settingsFileAbs), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := jsonutil.MarshalIndentWithNewline(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(settingsFileAbs, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// APIKey returns the inference API key. A .env file at the repository root
// is loaded first (best-effort) so keys don't have to live in the shell
// profile; the environment always wins over the file.
func APIKey() string {
	if key := os.Getenv(APIKeyEnvVar); key != "" {
		return key
	}
	if root, err := paths.RepoRoot(); err == nil {
		_ = godotenv.Load(filepath.Join(root, ".env"))
	}
	return os.Getenv(APIKeyEnvVar)
}
