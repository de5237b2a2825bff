package greenit

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownSlot indicates a slot name outside datacenter, cloud, development and network.
const ErrUnknownSlot = constError("unknown calculation slot")
