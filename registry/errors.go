package registry

import "errors"

var (
	// Permission and lookup errors
	ErrNoPermission      = errors.New("registry: no permission")
	ErrUnknownCollection = errors.New("registry: unknown collection")
	ErrUnknownItem       = errors.New("registry: unknown item")
	ErrUnknownAttribute  = errors.New("registry: attribute not found")
	ErrUnknownMetadata   = errors.New("registry: metadata not found")
	ErrUnknownApproval   = errors.New("registry: approval not found")
	ErrAlreadyExists     = errors.New("registry: item already exists")

	// Collection configuration errors
	ErrMaxSupplyLocked    = errors.New("registry: max supply is locked")
	ErrMaxSupplyReached   = errors.New("registry: max supply reached")
	ErrMaxSupplyTooSmall  = errors.New("registry: max supply below live item count")
	ErrCollectionNotEmpty = errors.New("registry: collection still has items")
	ErrUnaccepted         = errors.New("registry: ownership not accepted by new owner")

	// Mint window and witness errors
	ErrMintNotStarted  = errors.New("registry: mint has not started")
	ErrMintEnded       = errors.New("registry: mint has ended")
	ErrWitnessRequired = errors.New("registry: witness required")
	ErrBadWitness      = errors.New("registry: bad witness")

	// Lock errors
	ErrItemLocked           = errors.New("registry: item is locked")
	ErrItemsNonTransferable = errors.New("registry: collection items are non-transferable")
	ErrMetadataLocked       = errors.New("registry: metadata is locked")
	ErrAttributesLocked     = errors.New("registry: attributes are locked")

	// Trading errors
	ErrNotForSale    = errors.New("registry: item not for sale")
	ErrBidTooLow     = errors.New("registry: bid below listed price")
	ErrSwapNotFound  = errors.New("registry: swap not found")
	ErrSwapExpired   = errors.New("registry: swap expired")
	ErrWrongDuration = errors.New("registry: swap duration too long")

	// Presigned authorization errors
	ErrBadSignature    = errors.New("registry: bad signature")
	ErrDeadlineExpired = errors.New("registry: deadline expired")

	// Bounds errors
	ErrReachedApprovalLimit = errors.New("registry: approval limit reached")
	ErrDataTooLong          = errors.New("registry: data exceeds length limit")
	ErrWrongNamespace       = errors.New("registry: namespace not valid for target")
)
