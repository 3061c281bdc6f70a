package commerce

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dripgate/dripgate/app/models"
)

type fakeTenants struct {
	tenants []models.StoreTenant
	err     error
}

func (f *fakeTenants) ListActive() ([]models.StoreTenant, error) {
	return f.tenants, f.err
}

func TestVerifyWithGlobalSecret(t *testing.T) {
	body := []byte(`{"customer":{"email":"a@b.com"},"total_price":"10.00"}`)
	v := NewVerifier(nil, "shpss_secret")

	sig := ComputeSignature(body, "shpss_secret")
	assert.Equal(t, Authentic, v.Verify(body, sig, ""))

	wrong := ComputeSignature(body, "other_secret")
	assert.Equal(t, SignatureMismatch, v.Verify(body, wrong, ""))
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"total_price":"10.00"}`)
	v := NewVerifier(nil, "shpss_secret")
	sig := ComputeSignature(body, "shpss_secret")

	tampered := []byte(`{"total_price":"99.00"}`)
	assert.Equal(t, SignatureMismatch, v.Verify(tampered, sig, ""))
}

func TestVerifyNoSecretConfigured(t *testing.T) {
	v := NewVerifier(&fakeTenants{}, "")
	assert.Equal(t, NoSecretConfigured, v.Verify([]byte("{}"), "sig", "shop.example.com"))
}

func TestVerifyEmptySignature(t *testing.T) {
	v := NewVerifier(nil, "shpss_secret")
	assert.Equal(t, SignatureMismatch, v.Verify([]byte("{}"), "", ""))
}

func TestVerifyInvalidBase64Signature(t *testing.T) {
	v := NewVerifier(nil, "shpss_secret")
	assert.Equal(t, SignatureMismatch, v.Verify([]byte("{}"), "not base64!!!", ""))
}

func TestResolveSecretPicksMatchingTenant(t *testing.T) {
	tenants := &fakeTenants{tenants: []models.StoreTenant{
		{Domain: "alpha.myshopify.com", WebhookSecret: "alpha_secret", IsActive: true},
		{Domain: "beta.myshopify.com", WebhookSecret: "beta_secret", IsActive: true},
	}}
	v := NewVerifier(tenants, "fallback_secret")

	body := []byte(`{"id":1}`)
	sig := ComputeSignature(body, "beta_secret")
	assert.Equal(t, Authentic, v.Verify(body, sig, "beta.myshopify.com"))

	// The subdomain hint still matches the configured domain.
	sig = ComputeSignature(body, "alpha_secret")
	assert.Equal(t, Authentic, v.Verify(body, sig, "https://alpha.myshopify.com/"))
}

func TestResolveSecretFallsBackWithoutMatch(t *testing.T) {
	tenants := &fakeTenants{tenants: []models.StoreTenant{
		{Domain: "alpha.myshopify.com", WebhookSecret: "alpha_secret", IsActive: true},
	}}
	v := NewVerifier(tenants, "fallback_secret")

	body := []byte(`{"id":1}`)
	sig := ComputeSignature(body, "fallback_secret")
	assert.Equal(t, Authentic, v.Verify(body, sig, "unknown.example.com"))
}

func TestResolveSecretTenantSourceFailure(t *testing.T) {
	tenants := &fakeTenants{err: errors.New("db down")}
	v := NewVerifier(tenants, "fallback_secret")

	body := []byte(`{"id":1}`)
	sig := ComputeSignature(body, "fallback_secret")
	assert.Equal(t, Authentic, v.Verify(body, sig, "alpha.myshopify.com"))
}
