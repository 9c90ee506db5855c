package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/bridgematrix/internal/amounts"
	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
	"github.com/AndreyAkinshin/bridgematrix/internal/schema"
)

// Config is the validated configuration of a run. The harness accepts only
// this value and never consults the environment itself.
type Config struct {
	Root          string
	Wallet        string
	SignerKeyPath string
	Chains        []model.Chain
	Currencies    []model.Currency
	Modes         []model.Mode
	Amounts       *amounts.Table
	Client        Client
	Concurrency   int
	Timeout       time.Duration
	Retry         Retry
	ReportFile    string
	Log           Log
}

// Client describes how the bridge client is invoked.
type Client struct {
	Command string
	Args    []string
	Env     map[string]string
}

// Retry is the opt-in retry policy. Attempts of 1 means no retry.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

// Log configures diagnostic logging.
type Log struct {
	Level string
	File  string
}

// Load reads and parses a bridgematrix.yaml file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapKind(errors.KindConfig, err, "failed to read config file")
	}
	return Parse(data)
}

// Parse decodes a config file and validates it against the embedded schema.
// An empty document yields an empty File.
func Parse(data []byte) (*File, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapKind(errors.KindConfig, err, "failed to parse config file")
	}
	if doc == nil {
		return &File{}, nil
	}
	if err := schema.ValidateDocument(doc); err != nil {
		return nil, errors.WrapKind(errors.KindConfig, err, "invalid config file")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapKind(errors.KindConfig, err, "failed to parse config file")
	}
	return &f, nil
}

// Resolve combines the file, the environment, and defaults into a validated
// Config. Relative paths are resolved against root. Non-fatal problems are
// returned as warnings. Resolve fills defaults into f.
func Resolve(f *File, root string, env Env) (*Config, []string, error) {
	if f == nil {
		f = &File{}
	}
	var warnings []string

	if v := env.get(EnvWallet); v != "" {
		f.Wallet = v
	}
	if v := env.get(EnvSignerKeyPath); v != "" {
		f.SignerKeyPath = v
	}
	if v := env.get(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("invalid %s value %q (not a number), ignoring", EnvConcurrency, v))
		case n < MinConcurrency || n > MaxConcurrency:
			warnings = append(warnings, fmt.Sprintf("%s=%d out of range [%d-%d], ignoring", EnvConcurrency, n, MinConcurrency, MaxConcurrency))
		default:
			f.Concurrency = n
		}
	}

	applyDefaults(f)

	cfg, err := toConfig(f)
	if err != nil {
		return nil, warnings, errors.WrapKind(errors.KindConfig, err, "invalid configuration")
	}

	cfg.Root = root
	cfg.SignerKeyPath = resolveSignerKeyPath(f.SignerKeyPath, root)
	cfg.ReportFile = resolvePath(cfg.ReportFile, root)
	cfg.Log.File = resolvePath(cfg.Log.File, root)

	if cfg.Concurrency > 1 {
		warnings = append(warnings, fmt.Sprintf("concurrency=%d: client invocations share one wallet and signer, parallel runs may collide on nonces", cfg.Concurrency))
	}

	return cfg, warnings, nil
}

// resolveSignerKeyPath applies the project-relative default key file.
func resolveSignerKeyPath(path, root string) string {
	if path == "" {
		path = DefaultSignerKeyFile
	}
	return resolvePath(path, root)
}

func resolvePath(path, root string) string {
	if path == "" || filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
