package city

import "errors"

// ErrUnknownSize is a config error: the caller passed a CitySize value
// outside {Small, Medium, Large}. This is the one class of error that
// escapes city generation — everything else degrades into a fallback
// city.
var ErrUnknownSize = errors.New("city: unknown size tier")

// ErrMalformedExistingNames is a config error: a nil existing-names set
// where the caller must supply one (an empty set is fine; nil signals a
// caller that forgot to construct one).
var ErrMalformedExistingNames = errors.New("city: existingNames set is nil")

// ErrOutOfBoundsCenter is a config error: the requested city center
// lies outside the generated map's bounds.
var ErrOutOfBoundsCenter = errors.New("city: center is out of map bounds")
