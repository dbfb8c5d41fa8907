package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/dggcrm/dggcrm/internal/shared/errors"
)

// notFoundOr converts gorm's record-not-found into an application not-found
// error and wraps anything else.
func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(entity + " not found")
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

// createErr maps unique violations to a conflict error.
func createErr(err error, entity string) error {
	if apperrors.IsDuplicateError(err) {
		return apperrors.NewConflictError(entity + " already exists")
	}
	return fmt.Errorf("failed to create %s: %w", entity, err)
}

func updateErr(err error, entity string) error {
	if apperrors.IsDuplicateError(err) {
		return apperrors.NewConflictError(entity + " already exists")
	}
	return fmt.Errorf("failed to update %s: %w", entity, err)
}

// deleteResult returns a not-found error when nothing matched.
func deleteResult(result *gorm.DB, entity string) error {
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(entity + " not found")
	}
	return nil
}

func uniqueUints(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
