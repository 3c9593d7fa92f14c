package ingest

// BackendTag identifies which compute backend produced a Metrics value.
// Closed enum rather than a free string, so a typo in configuration fails
// at the top of Ingest (InvalidBackendTag) instead of silently tagging
// metrics with an unrecognized backend. config.Load does not check it.
type BackendTag string

const (
	BackendNativeGo      BackendTag = "native-go"
	BackendGonumParallel BackendTag = "gonum-parallel"
)

var recognizedBackendTags = map[BackendTag]bool{
	BackendNativeGo:      true,
	BackendGonumParallel: true,
}

// ValidBackendTag reports whether tag is a recognized BackendTag value.
func ValidBackendTag(tag BackendTag) bool { return recognizedBackendTags[tag] }

// Metrics is the consumer-serializable artifact produced once per
// ingestion call, immutable after emission.
type Metrics struct {
	RowsIn               int
	RowsOut              int
	DuplicatesRemoved    int
	GapsInserted         int
	RuntimeSeconds       float64
	ThroughputRowsPerSec float64
	BackendTag           BackendTag
	DowncastApplied      bool
}
