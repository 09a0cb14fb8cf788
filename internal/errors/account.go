package errors

var (
	ErrAmountRequired  = InvalidArgument("AMOUNT_REQUIRED", "amount is required")
	ErrInvalidAmount   = InvalidArgument("INVALID_AMOUNT", "amount must be a decimal number")
	ErrNonFinite       = InvalidArgument("NON_FINITE_AMOUNT", "amount must be finite")
	ErrNegativeAmount  = InvalidArgument("NEGATIVE_AMOUNT", "amount must not be negative")
	ErrTooManyDecimal  = InvalidArgument("TOO_MANY_DECIMALS", "amount has too many decimal places")
	ErrAmountRange     = Precision("AMOUNT_OUT_OF_RANGE", "amount is outside the supported range")
	ErrAmountPrecision = Precision("AMOUNT_PRECISION", "amount has more precision than supported")
)

var (
	ErrAccountRequired = InvalidArgument("ACCOUNT_REQUIRED", "account is required")
	ErrAccountTooLong  = InvalidArgument("ACCOUNT_TOO_LONG", "account identifier is too long")
	ErrAccountNotFound = NotFound("ACCOUNT_NOT_FOUND", "account not found")
)

var (
	ErrStoreUnavailable = Store("STORE_UNAVAILABLE", "account store failure")
	ErrStoreTimeout     = Store("STORE_TIMEOUT", "account store timed out")
)
