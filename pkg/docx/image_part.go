package docx

import (
	"crypto/sha1"
	"encoding/hex"
	"path"
)

// ImagePart is a media part holding image bytes, e.g. /word/media/image1.png
type ImagePart struct {
	*Part
	image  *Image
	config *Config
	sha1   string
}

func newImagePart(base *Part, img *Image, cfg *Config) *ImagePart {
	return &ImagePart{Part: base, image: img, config: cfg}
}

// Image returns the descriptor of the part's bytes, identified on first use
func (ip *ImagePart) Image() (*Image, error) {
	if ip.image != nil {
		return ip.image, nil
	}
	img, err := imageFromBlobWithConfig(ip.Blob(), ip.Filename(), ip.config)
	if err != nil {
		return nil, &ImageError{Path: ip.PartName(), Cause: err}
	}
	ip.image = img
	return img, nil
}

// SHA1 returns the hex SHA-1 digest of the part's bytes
func (ip *ImagePart) SHA1() string {
	if ip.image != nil {
		return ip.image.SHA1()
	}
	if ip.sha1 == "" {
		sum := sha1.Sum(ip.Blob())
		ip.sha1 = hex.EncodeToString(sum[:])
	}
	return ip.sha1
}

// Filename returns the base name of the partname
func (ip *ImagePart) Filename() string {
	return path.Base(ip.PartName())
}
