package controllers

import "errors"

var (
	errVersionRequired = errors.New("version is required")
	errVersionStale    = errors.New("version conflict")
)

// checkVersion validates the optimistic-lock token sent with a partial
// update against the stored row. Every mutation must carry the version it
// read; zero means the caller never fetched the entity, so the stale-write
// guard cannot be bypassed by simply omitting the field.
func checkVersion(given, current uint) error {
	if given == 0 {
		return errVersionRequired
	}
	if given != current {
		return errVersionStale
	}
	return nil
}

func versionFailStatus(err error) int {
	if errors.Is(err, errVersionStale) {
		return 409
	}
	return 400
}
