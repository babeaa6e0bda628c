package errs

import "github.com/pingcap/errors"

// arena errors
var (
	ErrSlotsExhausted = errors.Normalize("slot arena exhausted, %d chunks of %d slots in use", errors.RFCCodeText("Catalog:arena:ErrSlotsExhausted"))
	ErrInvalidHandle  = errors.Normalize("invalid slot handle %s", errors.RFCCodeText("Catalog:arena:ErrInvalidHandle"))
	ErrHandleReleased = errors.Normalize("slot handle %s is not live, released twice or stale", errors.RFCCodeText("Catalog:arena:ErrHandleReleased"))
)

// book record errors
var (
	ErrEmptyTitle   = errors.Normalize("book title must not be empty", errors.RFCCodeText("Catalog:book:ErrEmptyTitle"))
	ErrFieldTooLong = errors.Normalize("book %s is %d bytes, limit is %d", errors.RFCCodeText("Catalog:book:ErrFieldTooLong"))
	ErrUnknownOrder = errors.Normalize("unknown traversal order %q", errors.RFCCodeText("Catalog:bst:ErrUnknownOrder"))
)

// cli errors
var (
	ErrParseField = errors.Normalize("cannot parse %s from %q", errors.RFCCodeText("Catalog:cli:ErrParseField"))
	ErrSeedCount  = errors.Normalize("seed count must be positive, got %d", errors.RFCCodeText("Catalog:cli:ErrSeedCount"))
)

// config and logger errors
var (
	ErrLoadConfig      = errors.Normalize("load config file %s failed", errors.RFCCodeText("Catalog:config:ErrLoadConfig"))
	ErrUndecodedConfig = errors.Normalize("config contains undefined item: %s", errors.RFCCodeText("Catalog:config:ErrUndecodedConfig"))
	ErrInitLogger      = errors.Normalize("init logger error", errors.RFCCodeText("Catalog:log:ErrInitLogger"))
	ErrLogLevel        = errors.Normalize("unknown log level %q, want debug, info, warn, error or fatal", errors.RFCCodeText("Catalog:log:ErrLogLevel"))
)
