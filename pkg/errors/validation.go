package errors

import "math"

// ValidateAspectRatio rejects aspect ratios the layout engine has no
// recovery path for: non-positive, NaN, or infinite values. Callers
// must run this before invoking the engine; the engine itself performs
// no clamping.
func ValidateAspectRatio(ratio float64) error {
	if math.IsNaN(ratio) {
		return New(ErrCodeInvalidAspectRatio, "aspect ratio must not be NaN")
	}
	if math.IsInf(ratio, 0) {
		return New(ErrCodeInvalidAspectRatio, "aspect ratio must be finite")
	}
	if ratio <= 0 {
		return New(ErrCodeInvalidAspectRatio, "aspect ratio must be positive, got %v", ratio)
	}
	return nil
}

// ValidateChartID validates an identifier used for stored chart
// snapshots. Conservative on purpose: ids end up in URLs and file names.
func ValidateChartID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "chart ID cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "chart ID too long (max 128 characters)")
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return New(ErrCodeInvalidInput, "chart ID contains invalid character %q", r)
		}
	}
	return nil
}
