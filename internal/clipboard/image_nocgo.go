//go:build !cgo

package clipboard

import (
	"errors"
	"image"
)

var errCGODisabled = errors.New("clipboard image operations require cgo support")

func writeImageNative(image.Image) error {
	return errCGODisabled
}

func readImageNative() (image.Image, error) {
	return nil, errCGODisabled
}
