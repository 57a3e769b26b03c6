package content

// Media is the type-conditional payload of a WorkItem. The set of
// implementations is closed: Image, Video and Gallery.
type Media interface {
	Kind() Kind
	isMedia()
}

// Image is a static picture.
type Image struct {
	URL string
}

// Video is a looping clip with an optional poster frame.
type Video struct {
	URL    string
	Poster string
}

// Gallery is an ordered, non-empty sequence of pictures.
type Gallery struct {
	Images []string
}

func (Image) Kind() Kind   { return KindImage }
func (Video) Kind() Kind   { return KindVideo }
func (Gallery) Kind() Kind { return KindGallery }

func (Image) isMedia()   {}
func (Video) isMedia()   {}
func (Gallery) isMedia() {}

// Media returns the item's payload as a Media value. Items of a registered
// extension kind have no built-in payload and return ErrNoMedia.
func (w WorkItem) Media() (Media, error) {
	switch w.Type {
	case KindImage:
		return Image{URL: w.ImageURL}, nil
	case KindVideo:
		return Video{URL: w.VideoURL, Poster: w.ImageURL}, nil
	case KindGallery:
		images := make([]string, len(w.GalleryImages))
		copy(images, w.GalleryImages)
		return Gallery{Images: images}, nil
	}
	return nil, ErrNoMedia
}
