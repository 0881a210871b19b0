package passes

// Diagnostic codes for the pipeline error taxonomy enumerated in spec §7.
// Front-end-specific codes (UnknownRootKeyword, MissingObjectName,
// UnexpectedEntries) live alongside their front-ends in pkg/frontend.
const (
	CodeInvalidIdentifier     = "InvalidIdentifier"
	CodeDeviceNameNotPascal   = "DeviceNameNotPascal"
	CodeMissingAddressType    = "MissingAddressType"
	CodeUnsupportedBitSize    = "UnsupportedBitSize"
	CodeBoolFieldTooLarge     = "BoolFieldTooLarge"
	CodeExternInvalidBaseType = "ExternInvalidBaseType"
	CodeUnresolvedRef         = "UnresolvedRef"
	CodeRefKindMismatch       = "RefKindMismatch"
	CodeRepeatTryConversion   = "RepeatTryConversion"
	CodeRepeatCatchAllVariant = "RepeatCatchAllVariant"
	CodeAddressOverlap        = "AddressOverlap"
	CodeDuplicateName         = "DuplicateName"
	CodeEnumValueOutOfRange   = "EnumValueOutOfRange"
)
