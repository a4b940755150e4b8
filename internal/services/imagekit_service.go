// ./mentora-backend/internal/services/imagekit_service.go
package services

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/imagekit-developer/imagekit-go"
	"github.com/pkg/errors"
)

// ImageKitExpiry is how long an upload signature stays valid.
const ImageKitExpiry = 30 * time.Minute

// UploadAuth is what a browser needs to upload straight to ImageKit.
type UploadAuth struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// ImageKitConfig holds the account credentials.
type ImageKitConfig struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
}

// ImageKitSigner issues client-side upload signatures. Nothing is persisted.
type ImageKitSigner struct {
	ik         *imagekit.ImageKit
	configured bool
	now        func() time.Time
	newToken   func() string
}

func NewImageKitSigner(cfg ImageKitConfig) *ImageKitSigner {
	if cfg.PrivateKey == "" {
		log.Println("[ImageKitService] IMAGEKIT_PRIVATE_KEY not set, upload signatures will fail")
	} else {
		log.Printf("[ImageKitService] Signing uploads for %s", cfg.URLEndpoint)
	}
	return &ImageKitSigner{
		ik: imagekit.NewFromParams(imagekit.NewParams{
			PublicKey:   cfg.PublicKey,
			PrivateKey:  cfg.PrivateKey,
			UrlEndpoint: cfg.URLEndpoint,
		}),
		configured: cfg.PrivateKey != "",
		now:        time.Now,
		newToken:   func() string { return uuid.NewString() },
	}
}

// Sign returns a fresh token, its expiry in Unix seconds and the account's
// signature over both.
func (s *ImageKitSigner) Sign() (UploadAuth, error) {
	if !s.configured {
		return UploadAuth{}, errors.New("imagekit private key is not configured")
	}
	signed := s.ik.SignToken(imagekit.SignTokenParam{
		Token:   s.newToken(),
		Expires: s.now().Add(ImageKitExpiry).Unix(),
	})
	return UploadAuth{
		Token:     signed.Token,
		Expire:    signed.Expires,
		Signature: signed.Signature,
	}, nil
}
