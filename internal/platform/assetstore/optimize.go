// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assetstore

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Optimize downscales JPEG and PNG photos whose longest edge exceeds
// maxDimension, keeping the aspect ratio. Other files are returned untouched.
// The boolean reports whether the file was rewritten.
func Optimize(file File, maxDimension int) (File, bool, error) {
	var format imaging.Format
	switch file.ContentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return file, false, nil
	}

	source, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return file, false, fmt.Errorf("assetstore: decode image: %w", err)
	}

	bounds := source.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return file, false, nil
	}

	resized := imaging.Fit(source, maxDimension, maxDimension, imaging.Lanczos)

	var buffer bytes.Buffer
	if err := imaging.Encode(&buffer, resized, format, imaging.JPEGQuality(85)); err != nil {
		return file, false, fmt.Errorf("assetstore: encode image: %w", err)
	}

	file.Data = buffer.Bytes()
	return file, true, nil
}
