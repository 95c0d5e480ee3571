package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchoolLocation(t *testing.T) {
	assert.Equal(t, "Asia/Makassar", SchoolLocation("Asia/Makassar").String())
	assert.Equal(t, DefaultSchoolTimezone, SchoolLocation("").String())
	assert.Equal(t, DefaultSchoolTimezone, SchoolLocation("Mars/Olympus").String())
}

func TestToSchoolTime(t *testing.T) {
	loc := SchoolLocation("Asia/Jakarta")
	utc := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	got := ToSchoolTime(utc, loc)
	assert.Equal(t, 2, got.Day())
	assert.Equal(t, 3, got.Hour())
	assert.True(t, got.Equal(utc))

	assert.True(t, ToSchoolTime(time.Time{}, loc).IsZero())
	assert.Equal(t, utc, ToSchoolTime(utc, nil))
	assert.Nil(t, ToSchoolTimePtr(nil, loc))
	assert.Equal(t, 3, ToSchoolTimePtr(&utc, loc).Hour())
}
