package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// ErrInvalidImage is returned for header uploads that are not PNG or JPEG.
var ErrInvalidImage = errors.New("header image must be a PNG or JPEG")

// Header images are scaled down to fit this box before they are stored.
const (
	headerMaxWidth  = 600
	headerMaxHeight = 240
)

// HeaderImageStore keeps the proposal header image as a base64 data URI.
type HeaderImageStore struct {
	mu      sync.Mutex
	persist *Persistence
	dataURI string
}

func NewHeaderImageStore(persist *Persistence) *HeaderImageStore {
	return &HeaderImageStore{persist: persist, dataURI: persist.LoadHeader()}
}

// DataURI returns the stored image, or "" when none is set.
func (s *HeaderImageStore) DataURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataURI
}

// Set normalizes an uploaded PNG or JPEG and stores it. The in-memory value
// is kept even when the persisted write is rejected.
func (s *HeaderImageStore) Set(upload []byte) (string, error) {
	uri, err := EncodeHeaderImage(upload)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataURI = uri
	s.persist.SaveHeader(uri)
	return uri, nil
}

func (s *HeaderImageStore) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataURI = ""
	s.persist.RemoveHeader()
}

// EncodeHeaderImage sniffs, downsizes and re-encodes an upload as a data URI.
func EncodeHeaderImage(upload []byte) (string, error) {
	mtype := mimetype.Detect(upload)

	var format imaging.Format
	switch {
	case mtype.Is("image/png"):
		format = imaging.PNG
	case mtype.Is("image/jpeg"):
		format = imaging.JPEG
	default:
		return "", fmt.Errorf("%w: got %s", ErrInvalidImage, mtype.String())
	}

	img, err := imaging.Decode(bytes.NewReader(upload))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() > headerMaxWidth || b.Dy() > headerMaxHeight {
		img = imaging.Fit(img, headerMaxWidth, headerMaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode header image: %w", err)
	}

	mime := "image/png"
	if format == imaging.JPEG {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI splits a base64 image data URI into its bytes and file
// extension ("png" or "jpg").
func DecodeDataURI(uri string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("%w: not a base64 data URI", ErrInvalidImage)
	}

	var ext string
	switch strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64") {
	case "image/png":
		ext = "png"
	case "image/jpeg", "image/jpg":
		ext = "jpg"
	default:
		return nil, "", ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return data, ext, nil
}
