package common

// Placeholder names used when printing types.
const (
	UnknownStr       = "unknown"
	InterfaceTypeStr = "interface"
)
