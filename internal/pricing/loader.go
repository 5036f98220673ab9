package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading JSON policy files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based policy loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "pricing-loader").Logger(),
	}
}

// Load reads a JSON policy file and returns the parsed Policy.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Policy, error) {
	l.logger.Info().Str("file", filePath).Msg("loading pricing policy file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open policy file")
		return Policy{}, fmt.Errorf("failed to open policy file %s: %w", filePath, err)
	}
	defer file.Close()

	var policy Policy
	if err := json.NewDecoder(file).Decode(&policy); err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode policy file")
		return Policy{}, fmt.Errorf("failed to decode policy file %s: %w", filePath, err)
	}

	if policy.Currency == "" {
		policy.Currency = DefaultPolicy().Currency
	}

	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid policy in %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Float64("shipping_flat_fee", policy.ShippingFlatFee).
		Float64("free_shipping_threshold", policy.FreeShippingThreshold).
		Msg("pricing policy loaded successfully")

	return policy, nil
}
