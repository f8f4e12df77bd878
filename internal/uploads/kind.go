package uploads

import "fmt"

// Kind identifies the category of asset being uploaded. The kind determines
// the allowed file formats, the size ceiling, and the bucket folder.
type Kind string

// Asset kinds.
const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Folder returns the bucket folder that objects of this kind are stored under.
func (k Kind) Folder() string {
	switch k {
	case KindVideo:
		return "videos"
	default:
		return "thumbnails"
	}
}

// Validate checks that the kind is a known asset kind.
func (k Kind) Validate() error {
	switch k {
	case KindImage, KindVideo:
		return nil
	default:
		return fmt.Errorf("unknown asset kind: %s", k)
	}
}

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
}

// ContentType returns the MIME type for ext if it is allowed for this kind.
// The second return is false for unsupported extensions.
func (k Kind) ContentType(ext string) (string, bool) {
	var ct string
	var ok bool
	switch k {
	case KindVideo:
		ct, ok = videoExtensions[ext]
	default:
		ct, ok = imageExtensions[ext]
	}
	return ct, ok
}
