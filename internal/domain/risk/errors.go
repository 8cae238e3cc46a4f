package risk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/stride-risk/internal/domain"
)

// Common errors
var (
	// ErrCatalogIntegrity is the sentinel wrapped by CatalogIntegrityError.
	ErrCatalogIntegrity = errors.New("catalog integrity violated")

	// ErrNilCatalog is returned when an engine is built without a catalog.
	ErrNilCatalog = errors.New("catalog cannot be nil")
)

// UnresolvedReference is a pattern-to-factor link that points nowhere.
type UnresolvedReference struct {
	PatternID domain.PatternID
	FactorID  domain.FactorID
}

// CatalogIntegrityError is returned when a catalog is internally inconsistent,
// e.g. an injury pattern references a factor ID the factor catalog lacks.
// It is not recoverable at runtime; callers are expected to fail fast.
type CatalogIntegrityError struct {
	Reason     string
	Unresolved []UnresolvedReference
}

// Error implements the error interface.
func (e *CatalogIntegrityError) Error() string {
	if len(e.Unresolved) == 0 {
		return fmt.Sprintf("%s: %s", ErrCatalogIntegrity, e.Reason)
	}
	refs := make([]string, 0, len(e.Unresolved))
	for _, u := range e.Unresolved {
		refs = append(refs, fmt.Sprintf("%s->%s", u.PatternID, u.FactorID))
	}
	return fmt.Sprintf("%s: %s [%s]", ErrCatalogIntegrity, e.Reason, strings.Join(refs, ", "))
}

// Unwrap returns ErrCatalogIntegrity so errors.Is works on the sentinel.
func (e *CatalogIntegrityError) Unwrap() error {
	return ErrCatalogIntegrity
}
