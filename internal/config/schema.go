// Package config provides loading and validation for bridgematrix.yaml and
// the environment variables that complement it.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the raw content of bridgematrix.yaml.
type File struct {
	Wallet        string                            `yaml:"wallet,omitempty"`
	SignerKeyPath string                            `yaml:"signer_key_path,omitempty"`
	Chains        []string                          `yaml:"chains,omitempty"`
	Currencies    []string                          `yaml:"currencies,omitempty"`
	Modes         []string                          `yaml:"modes,omitempty"`
	Amounts       map[string]map[string]AmountValue `yaml:"amounts,omitempty"`
	Client        *ClientFile                       `yaml:"client,omitempty"`
	Concurrency   int                               `yaml:"concurrency,omitempty"`
	Timeout       string                            `yaml:"timeout,omitempty"`
	Retry         *RetryFile                        `yaml:"retry,omitempty"`
	ReportFile    string                            `yaml:"report_file,omitempty"`
	Log           *LogFile                          `yaml:"log,omitempty"`
}

// ClientFile configures the external bridge client.
type ClientFile struct {
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

// RetryFile configures retries of failed client invocations.
type RetryFile struct {
	Attempts int    `yaml:"attempts,omitempty"`
	Delay    string `yaml:"delay,omitempty"`
}

// LogFile configures diagnostic logging.
type LogFile struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// AmountValue holds the literal text of an amount so that 0.1 written as a
// YAML number keeps its exact decimal representation.
type AmountValue string

// UnmarshalYAML accepts any scalar and keeps its source text.
func (a *AmountValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	*a = AmountValue(node.Value)
	return nil
}
