package stage

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/sheetfab/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadIcon opens the image at src, a local path or an URL, and fits it
// into a size x size square.
func LoadIcon(src string, size int) (*image.NRGBA, error) {
	path := src
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if err != nil {
			return nil, fmt.Errorf("download icon: %w", err)
		}
		defer os.Remove(f.Name())
		defer f.Close()
		path = f.Name()
	}

	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, fmt.Errorf("icon: %w", err)
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("icon %s is not an image file", src)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}
	return imaging.Fit(img, size, size, imaging.Lanczos), nil
}
