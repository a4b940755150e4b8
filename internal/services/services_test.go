package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func TestImageKitSign(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := NewImageKitSigner(ImageKitConfig{PrivateKey: "private_key", URLEndpoint: "https://ik.imagekit.io/test"})
	s.now = func() time.Time { return now }
	s.newToken = func() string { return "token-1" }

	got, err := s.Sign()
	require.NoError(t, err)

	mac := hmac.New(sha1.New, []byte("private_key"))
	mac.Write([]byte("token-11700001800"))
	assert.Equal(t, UploadAuth{
		Token:     "token-1",
		Expire:    1700001800,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}, got)
}

func TestImageKitSignUsesFreshTokens(t *testing.T) {
	s := NewImageKitSigner(ImageKitConfig{PrivateKey: "k"})
	a, err := s.Sign()
	require.NoError(t, err)
	b, err := s.Sign()
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
	assert.Len(t, a.Signature, 40)
}

func TestImageKitSignWithoutKey(t *testing.T) {
	_, err := NewImageKitSigner(ImageKitConfig{PublicKey: "public_key"}).Sign()
	assert.Error(t, err)
}

func TestAmountInCents(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{19.999, 2000},
		{19.99, 1999},
		{0.5, 50},
		{999999.99, MaxAmountInCents},
	}
	for _, tt := range tests {
		got, err := AmountInCents(tt.amount)
		require.NoError(t, err, "%v", tt.amount)
		assert.Equal(t, tt.want, got)
	}

	for _, amount := range []float64{0.001, 1000000, 1e300, math.MaxFloat64, math.NaN()} {
		_, err := AmountInCents(amount)
		assert.ErrorIs(t, err, ErrAmountOutOfRange, "%v", amount)
	}
}

func TestPaymentErrorMessage(t *testing.T) {
	assert.Equal(t, "Your card was declined.", PaymentErrorMessage(&stripe.Error{Msg: "Your card was declined."}))
	assert.Equal(t, "network down", PaymentErrorMessage(errors.New("network down")))
}
