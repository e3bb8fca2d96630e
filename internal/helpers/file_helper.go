package helpers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type ImageSaveResult struct {
	Saved  []string
	Errors []string
}

// SaveOfferImages stores each uploaded .png under <mediaRoot>/offers. A file
// with a rejected extension gets a per-file error while the rest of the
// batch is still written. A same-named stored image is removed first and the
// new one written in its place, last write wins.
func SaveOfferImages(c *gin.Context, files []*multipart.FileHeader, mediaRoot string) (*ImageSaveResult, error) {
	uploadPath := filepath.Join(mediaRoot, "offers")
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return nil, err
	}

	result := &ImageSaveResult{
		Saved:  make([]string, 0, len(files)),
		Errors: make([]string, 0),
	}
	for _, file := range files {
		filename := filepath.Base(file.Filename)
		if !strings.HasSuffix(filename, ".png") {
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid image file: %s. Only PNG files are allowed.", file.Filename))
			continue
		}

		fullFilepath := filepath.Join(uploadPath, filename)
		if _, err := os.Stat(fullFilepath); err == nil {
			if err := os.Remove(fullFilepath); err != nil {
				return result, err
			}
		}
		if err := c.SaveUploadedFile(file, fullFilepath); err != nil {
			return result, err
		}
		result.Saved = append(result.Saved, filename)
	}
	return result, nil
}
