package services

import "context"

type credentialKey struct{}

// WithCredential attaches the caller's access token to ctx. Outgoing API calls
// made with the returned context carry it as a bearer token.
func WithCredential(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialKey{}, token)
}

// CredentialFrom returns the access token attached to ctx, if any.
func CredentialFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(credentialKey{}).(string)
	return token, ok && token != ""
}
