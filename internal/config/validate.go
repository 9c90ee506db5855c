package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AndreyAkinshin/bridgematrix/internal/amounts"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Bounds for numeric settings.
const (
	MinConcurrency   = 1
	MaxConcurrency   = 64
	MaxRetryAttempts = 10
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// toConfig validates a defaulted File and converts it into typed values.
func toConfig(f *File) (*Config, error) {
	chains, err := parseChains(f.Chains)
	if err != nil {
		return nil, err
	}
	currencies, err := parseCurrencies(f.Currencies)
	if err != nil {
		return nil, err
	}
	modes, err := parseModes(f.Modes)
	if err != nil {
		return nil, err
	}
	table, err := parseAmounts(f.Amounts)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(f.Client.Command) == "" {
		return nil, &ValidationError{Field: "client.command", Message: "is required"}
	}
	if f.Concurrency < MinConcurrency || f.Concurrency > MaxConcurrency {
		return nil, &ValidationError{
			Field:   "concurrency",
			Message: fmt.Sprintf("must be between %d and %d", MinConcurrency, MaxConcurrency),
		}
	}
	timeout, err := parseDuration("timeout", f.Timeout)
	if err != nil {
		return nil, err
	}
	if f.Retry.Attempts < 1 || f.Retry.Attempts > MaxRetryAttempts {
		return nil, &ValidationError{
			Field:   "retry.attempts",
			Message: fmt.Sprintf("must be between 1 and %d", MaxRetryAttempts),
		}
	}
	delay, err := parseDuration("retry.delay", f.Retry.Delay)
	if err != nil {
		return nil, err
	}
	if !validLogLevels[f.Log.Level] {
		return nil, &ValidationError{Field: "log.level", Message: `must be one of "debug", "info", "warn", "error"`}
	}

	return &Config{
		Wallet:     strings.TrimSpace(f.Wallet),
		Chains:     chains,
		Currencies: currencies,
		Modes:      modes,
		Amounts:    table,
		Client: Client{
			Command: f.Client.Command,
			Args:    append([]string(nil), f.Client.Args...),
			Env:     copyMap(f.Client.Env),
		},
		Concurrency: f.Concurrency,
		Timeout:     timeout,
		Retry:       Retry{Attempts: f.Retry.Attempts, Delay: delay},
		ReportFile:  f.ReportFile,
		Log:         Log{Level: f.Log.Level, File: f.Log.File},
	}, nil
}

func parseChains(names []string) ([]model.Chain, error) {
	if len(names) == 0 {
		return append([]model.Chain(nil), DefaultChains...), nil
	}
	chains := make([]model.Chain, 0, len(names))
	for i, name := range names {
		c, ok := model.ParseChain(name)
		if !ok {
			known := make([]string, 0, len(model.KnownChains()))
			for _, k := range model.KnownChains() {
				known = append(known, k.String())
			}
			return nil, &ValidationError{
				Field:   fmt.Sprintf("chains[%d]", i),
				Message: fmt.Sprintf("unknown chain %q (known: %s)", name, strings.Join(known, ", ")),
			}
		}
		chains = append(chains, c)
	}
	return chains, nil
}

func parseCurrencies(names []string) ([]model.Currency, error) {
	if len(names) == 0 {
		return append([]model.Currency(nil), DefaultCurrencies...), nil
	}
	currencies := make([]model.Currency, 0, len(names))
	for i, name := range names {
		c := model.Currency(strings.TrimSpace(name))
		if err := c.Validate(); err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("currencies[%d]", i), Message: err.Error()}
		}
		currencies = append(currencies, c)
	}
	return currencies, nil
}

func parseModes(names []string) ([]model.Mode, error) {
	if len(names) == 0 {
		return append([]model.Mode(nil), DefaultModes...), nil
	}
	modes := make([]model.Mode, 0, len(names))
	for i, name := range names {
		m, ok := model.ParseMode(name)
		if !ok {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("modes[%d]", i),
				Message: fmt.Sprintf(`unknown mode %q (must be "deposit" or "withdraw")`, name),
			}
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// parseAmounts builds the amount table. A nil map selects the built-in table.
func parseAmounts(raw map[string]map[string]AmountValue) (*amounts.Table, error) {
	if raw == nil {
		return amounts.Default(), nil
	}
	entries := make(map[amounts.Pair]decimal.Decimal)
	seen := make(map[model.Currency]string, len(raw))
	for key, byMode := range raw {
		currency := model.Currency(strings.TrimSpace(key))
		if err := currency.Validate(); err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("amounts.%s", key), Message: err.Error()}
		}
		if prev, ok := seen[currency]; ok {
			return nil, &ValidationError{Field: fmt.Sprintf("amounts.%s", key), Message: fmt.Sprintf("duplicates amounts.%s", prev)}
		}
		seen[currency] = key
		for modeName, value := range byMode {
			field := fmt.Sprintf("amounts.%s.%s", currency, modeName)
			mode, ok := model.ParseMode(modeName)
			if !ok {
				return nil, &ValidationError{Field: field, Message: "unknown mode"}
			}
			amount, err := decimal.NewFromString(strings.TrimSpace(string(value)))
			if err != nil {
				return nil, &ValidationError{Field: field, Message: fmt.Sprintf("invalid decimal %q", value)}
			}
			entries[amounts.Pair{Currency: currency, Mode: mode}] = amount
		}
	}
	return amounts.NewTable(entries)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("invalid duration %q", value)}
	}
	if d < 0 {
		return 0, &ValidationError{Field: field, Message: "must not be negative"}
	}
	return d, nil
}

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
