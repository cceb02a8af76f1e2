package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a store that writes receipts below dir.
func NewFileStore(dir string, logger zerolog.Logger) Store {
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "receipt-file-store").Logger(),
	}
}

// Save writes the gzipped receipt to dir/key. The file is written under a
// temporary name and renamed so readers never see a partial receipt.
func (s *fileStore) Save(ctx context.Context, key string, r *Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create receipt directory")
		return fmt.Errorf("failed to create receipt directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".receipt-*")
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create receipt file")
		return fmt.Errorf("failed to create receipt file %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, r); err != nil {
		tmp.Close()
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write receipt")
		return fmt.Errorf("failed to write receipt %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close receipt file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to move receipt into place")
		return fmt.Errorf("failed to move receipt %s into place: %w", path, err)
	}

	s.logger.Debug().
		Str("file", path).
		Str("order_id", r.OrderID.String()).
		Msg("receipt archived")

	return nil
}
