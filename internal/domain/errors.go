package domain

import "errors"

var (
	// ErrNoSignal signals an all-zero query vector: the modality has no
	// usable query and must yield an empty ranking, not a crash.
	ErrNoSignal = errors.New("no usable query signal")
	// ErrStoreUnavailable signals a missing or corrupt embedding store.
	// The affected modality degrades to zero candidates.
	ErrStoreUnavailable = errors.New("embedding store unavailable")
	// ErrCatalogUnavailable signals a missing or corrupt catalog file.
	// Fatal: there is nothing to rank against.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrSpotNotFound signals a missing catalog record.
	ErrSpotNotFound = errors.New("spot not found")
	// ErrEncoderUnavailable signals an encoder provider failure.
	ErrEncoderUnavailable = errors.New("encoder unavailable")
)
