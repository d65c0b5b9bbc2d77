package report

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/rwcarlsen/goexif/exif"
)

// ErrPermissionDenied is surfaced when the user refuses a device capability.
// The draft is left untouched.
var ErrPermissionDenied = errors.New("permission denied")

// LocationSource acquires the report coordinates. The submission workflow is
// the same whichever source feeds it; only the acquisition differs.
type LocationSource interface {
	Acquire() (Location, error)
}

// DeviceLocator adapts the platform geolocation capability: a permission
// prompt followed by a single high-accuracy position fix.
type DeviceLocator struct {
	RequestPermission func() (bool, error)
	CurrentPosition   func() (Location, error)
}

func (d DeviceLocator) Acquire() (Location, error) {
	granted, err := d.RequestPermission()
	if err != nil {
		return Location{}, fmt.Errorf("location permission request failed: %w", err)
	}
	if !granted {
		return Location{}, ErrPermissionDenied
	}
	loc, err := d.CurrentPosition()
	if err != nil {
		return Location{}, fmt.Errorf("failed to get current position: %w", err)
	}
	return loc, checkCoordinates(loc)
}

// ManualEntry holds the two coordinate strings the user typed.
type ManualEntry struct {
	Latitude  string
	Longitude string
}

func (m ManualEntry) Acquire() (Location, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(m.Latitude), 64)
	if err != nil {
		return Location{}, fmt.Errorf("latitude %q is not a number", m.Latitude)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(m.Longitude), 64)
	if err != nil {
		return Location{}, fmt.Errorf("longitude %q is not a number", m.Longitude)
	}
	loc := Location{Latitude: lat, Longitude: lng}
	return loc, checkCoordinates(loc)
}

// ExifLocator reads the GPS tags of the attached photo, for reports composed
// from an earlier capture instead of a live position fix.
type ExifLocator struct {
	PhotoPath string
}

func (e ExifLocator) Acquire() (Location, error) {
	file, err := os.Open(e.PhotoPath)
	if err != nil {
		return Location{}, fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return Location{}, fmt.Errorf("photo has no EXIF data: %w", err)
	}
	lat, lng, err := x.LatLong()
	if err != nil {
		return Location{}, fmt.Errorf("photo has no GPS tags: %w", err)
	}
	loc := Location{Latitude: lat, Longitude: lng}
	return loc, checkCoordinates(loc)
}

func checkCoordinates(loc Location) error {
	if !s2.LatLngFromDegrees(loc.Latitude, loc.Longitude).IsValid() {
		return fmt.Errorf("coordinates out of range: %f, %f", loc.Latitude, loc.Longitude)
	}
	return nil
}
