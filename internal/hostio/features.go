package hostio

// Features are the boolean switches the engine consults at both
// initialization and per-frame processing time. Populating a filter
// table implicitly turns on the corresponding *Filtering/*Cache flag,
// per the specification; callers rarely need to set these directly.
type Features struct {
	AllowAnyLocalhost  bool
	AllowAnyMulticast  bool
	AllowAnyBroadcast  bool
	AllowMACFiltering  bool
	AllowIPFiltering   bool
	AllowARPCache      bool
	AllowVLANFiltering bool
}

// DefaultFeatures mirrors the specification's compile-time defaults.
func DefaultFeatures() Features {
	return Features{
		AllowAnyLocalhost:  true,
		AllowAnyMulticast:  true,
		AllowAnyBroadcast:  false,
		AllowMACFiltering:  true,
		AllowIPFiltering:   true,
		AllowARPCache:      true,
		AllowVLANFiltering: true,
	}
}
