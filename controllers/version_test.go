package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, checkVersion(3, 3))

	err := checkVersion(2, 3)
	assert.ErrorIs(t, err, errVersionStale)
	assert.Equal(t, 409, versionFailStatus(err))

	// Omitting the version must not bypass the stale-write guard.
	err = checkVersion(0, 3)
	assert.ErrorIs(t, err, errVersionRequired)
	assert.Equal(t, 400, versionFailStatus(err))
}
