// Package auth bootstraps the Firebase Admin SDK from a service-account key.
package auth

import (
	"context"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"google.golang.org/api/option"
)

// NormalizeKeyData fixes a service-account JSON whose private_key carries
// literal "\n" sequences, which happens when the key is pasted into a single
// environment variable.
func NormalizeKeyData(keyData string) ([]byte, error) {
	if !gjson.Valid(keyData) {
		return nil, errors.New("key data is not valid JSON")
	}
	privateKey := gjson.Get(keyData, "private_key")
	if !privateKey.Exists() {
		return nil, errors.New("key data has no private_key")
	}
	fixed, err := sjson.Set(keyData, "private_key", strings.ReplaceAll(privateKey.String(), `\n`, "\n"))
	if err != nil {
		return nil, errors.Wrap(err, "rewriting private_key")
	}
	return []byte(fixed), nil
}

// NewClient initializes the Firebase app and returns its auth client.
func NewClient(ctx context.Context, keyData string) (*fbauth.Client, error) {
	credentials, err := NormalizeKeyData(keyData)
	if err != nil {
		return nil, err
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting auth client")
	}
	return client, nil
}
