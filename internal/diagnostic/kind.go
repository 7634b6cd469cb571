package diagnostic

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a fatal derivation error.
type Kind int

const (
	_ Kind = iota // zero is not a valid kind

	// KindMalformedAnnotationShape: the namespace annotation is not in list form.
	KindMalformedAnnotationShape
	// KindUnsupportedAnnotationEntry: a list entry is not a name/value pair.
	KindUnsupportedAnnotationEntry
	// KindTooManyArguments: more entries than recognized argument names.
	KindTooManyArguments
	// KindUnrecognizedArgumentName: an entry name is not recognized.
	KindUnrecognizedArgumentName
	// KindDuplicateArgument: a recognized name is supplied twice.
	KindDuplicateArgument
	// KindMissingInputSource: neither path nor serialized is given.
	KindMissingInputSource
	// KindConflictingInputSource: both path and serialized are given.
	KindConflictingInputSource
	// KindUnnamedFieldUnsupported: an embedded field has no name of its own.
	KindUnnamedFieldUnsupported
	// KindUnsupportedDataShape: the annotated type is not a plain struct.
	KindUnsupportedDataShape
)

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindMalformedAnnotationShape,
		KindUnsupportedAnnotationEntry,
		KindTooManyArguments,
		KindUnrecognizedArgumentName,
		KindDuplicateArgument,
		KindMissingInputSource,
		KindConflictingInputSource,
		KindUnnamedFieldUnsupported,
		KindUnsupportedDataShape,
	}
}
