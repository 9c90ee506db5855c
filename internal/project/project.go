package project

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/AndreyAkinshin/bridgematrix/internal/config"
	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
)

// Project is a resolved working context: its root, the config file it was
// loaded from (empty when none exists), and the validated configuration.
type Project struct {
	Root       string
	ConfigPath string
	Config     *config.Config
	Warnings   []string
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// WorkDir is the directory discovery starts from. Defaults to the current directory.
	WorkDir string
	// ConfigPath is an explicit config file, typically from --config.
	ConfigPath string
	// Env is the process environment. Defaults to config.OSEnv().
	Env config.Env
}

// Load resolves the project root and configuration.
//
// The config file is chosen in order: opts.ConfigPath, BRIDGEMATRIX_CONFIG,
// then bridgematrix.yaml found by walking up from WorkDir. Without any file
// the working directory is the root and built-in defaults apply. Variables
// from <root>/.env fill in anything the real environment leaves unset.
func Load(opts LoadOptions) (*Project, error) {
	env := opts.Env
	if env == nil {
		env = config.OSEnv()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to determine working directory")
		}
		workDir = cwd
	}

	root, configPath, err := locate(workDir, opts.ConfigPath, env)
	if err != nil {
		return nil, err
	}

	var file *config.File
	if configPath != "" {
		file, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	dotenv, err := readDotEnv(root)
	if err != nil {
		return nil, err
	}

	cfg, warnings, err := config.Resolve(file, root, env.WithFallback(dotenv))
	if err != nil {
		return nil, err
	}

	return &Project{
		Root:       root,
		ConfigPath: configPath,
		Config:     cfg,
		Warnings:   warnings,
	}, nil
}

// locate returns the project root and the config file path, if any.
func locate(workDir, explicit string, env config.Env) (root, configPath string, err error) {
	if explicit == "" {
		if v, ok := env(config.EnvConfigPath); ok && v != "" {
			explicit = v
		}
	}

	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workDir, explicit)
		}
		explicit = filepath.Clean(explicit)
		if _, statErr := os.Stat(explicit); statErr != nil {
			if os.IsNotExist(statErr) {
				return "", "", errors.MissingArtifact("config file", explicit)
			}
			return "", "", errors.WrapKind(errors.KindConfig, statErr, "cannot access config file")
		}
		return filepath.Dir(explicit), explicit, nil
	}

	root, err = FindRootFrom(workDir)
	if stderrors.Is(err, ErrNoProjectRoot) {
		abs, absErr := filepath.Abs(workDir)
		if absErr != nil {
			return "", "", errors.Wrap(absErr, "failed to resolve working directory")
		}
		return abs, "", nil
	}
	if err != nil {
		return "", "", errors.Wrap(err, "failed to locate project root")
	}
	return root, filepath.Join(root, ConfigFileName), nil
}

// readDotEnv reads <root>/.env. A missing file yields no variables.
func readDotEnv(root string) (map[string]string, error) {
	path := filepath.Join(root, DotEnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.WrapKind(errors.KindConfig, err, "failed to read "+path)
	}
	return vars, nil
}
