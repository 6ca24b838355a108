package store

import "errors"

// Sentinel errors returned by document-store adapters to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrDocumentNotFound is returned by FindOne when no document in the
	// collection matches the given filter.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrDuplicateKey is returned when an insert violates a uniqueness
	// constraint maintained by the backing store (e.g. the username index
	// on the users collection).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStoreUnavailable is returned (or wrapped) when the backing store
	// cannot be reached: failed connection, failed ping, network loss
	// mid-operation. The vault does not retry; any retry policy belongs to
	// the adapter's driver configuration.
	ErrStoreUnavailable = errors.New("document store is unavailable")

	// ErrUnknownBackend is returned by NewDocumentStore when the configured
	// backend name does not match any known adapter.
	ErrUnknownBackend = errors.New("unknown document store backend")
)

// Low-level operation errors wrapped by the SQL-backed adapter when a
// query-building or scanning step fails before any domain logic applies.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrEncodingDocument is returned when a document or filter cannot be
	// serialised to JSON for storage or matching.
	ErrEncodingDocument = errors.New("error encoding document")

	// ErrDecodingDocument is returned when a stored payload cannot be
	// deserialised back into a document.
	ErrDecodingDocument = errors.New("error decoding document")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan document row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan document rows")
)
