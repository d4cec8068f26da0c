package huwise

import (
	"context"
	"fmt"
)

// Validate checks that exactly one identifier form is set.
func (i DatasetIdentifier) Validate() error {
	if i.DatasetID != "" && i.DatasetUID != "" {
		return fmt.Errorf("%w: dataset_id=%q dataset_uid=%q",
			ErrIdentifiersMutuallyExclusive, i.DatasetID, i.DatasetUID)
	}

	if i.DatasetID == "" && i.DatasetUID == "" {
		return ErrIdentifierRequired
	}

	return nil
}

// ValidateDatasetIdentifier validates an identifier and resolves it to the
// dataset's UID. A UID passes through untouched; a numeric ID is resolved
// through the resolver. Validation failures are permanent and surface
// without any remote call.
func ValidateDatasetIdentifier(ctx context.Context, resolver UIDResolver, ident DatasetIdentifier) (string, error) {
	err := ident.Validate()
	if err != nil {
		return "", err
	}

	if ident.DatasetID != "" {
		uid, err := resolver.LookupUID(ctx, ident.DatasetID)
		if err != nil {
			return "", fmt.Errorf("resolving dataset ID %q: %w", ident.DatasetID, err)
		}

		return uid, nil
	}

	return ident.DatasetUID, nil
}
