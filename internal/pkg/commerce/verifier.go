package commerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/dripgate/dripgate/app/models"
)

// AuthenticityResult classifies a webhook signature check.
type AuthenticityResult int

const (
	// Authentic means the signature matched the resolved secret.
	Authentic AuthenticityResult = iota
	// SignatureMismatch means a secret was resolved but the signature did not match.
	SignatureMismatch
	// NoSecretConfigured means no tenant matched and no global secret is set.
	NoSecretConfigured
)

func (r AuthenticityResult) String() string {
	switch r {
	case Authentic:
		return "authentic"
	case SignatureMismatch:
		return "signature_mismatch"
	case NoSecretConfigured:
		return "no_secret_configured"
	default:
		return "unknown"
	}
}

// TenantSource yields the tenants eligible for secret resolution.
type TenantSource interface {
	ListActive() ([]models.StoreTenant, error)
}

// Verifier authenticates inbound commerce webhooks. Multi-tenant setups
// resolve the secret from the shop-domain header; single-tenant setups
// fall back to one globally configured secret.
type Verifier struct {
	tenants        TenantSource
	fallbackSecret string
}

// NewVerifier builds a verifier from a tenant source and the global
// fallback secret (may be empty).
func NewVerifier(tenants TenantSource, fallbackSecret string) *Verifier {
	return &Verifier{tenants: tenants, fallbackSecret: fallbackSecret}
}

// Verify checks the supplied signature over the raw, unparsed body bytes.
// Verification must happen before any JSON parsing: re-serialization can
// change the bytes and invalidate the signature.
func (v *Verifier) Verify(rawBody []byte, suppliedSignature, shopDomainHint string) AuthenticityResult {
	secret := v.resolveSecret(shopDomainHint)
	if secret == "" {
		return NoSecretConfigured
	}

	if verifySignature(rawBody, suppliedSignature, secret) {
		return Authentic
	}
	return SignatureMismatch
}

// resolveSecret picks the secret of the first active tenant whose
// normalized domain substring-matches the hint. The fuzzy match is
// intentional: senders report subdomain variants of the configured shop
// domain.
func (v *Verifier) resolveSecret(shopDomainHint string) string {
	hint := models.NormalizeDomain(shopDomainHint)
	if hint != "" && v.tenants != nil {
		tenants, err := v.tenants.ListActive()
		if err == nil {
			for _, t := range tenants {
				domain := models.NormalizeDomain(t.Domain)
				if domain == "" {
					continue
				}
				if strings.Contains(hint, domain) || strings.Contains(domain, hint) {
					return t.WebhookSecret
				}
			}
		}
	}
	return v.fallbackSecret
}

// ComputeSignature returns the base64 HMAC-SHA256 of the payload. Exposed
// so tests and local tooling can sign request bodies.
func ComputeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func verifySignature(payload []byte, suppliedSignature, secret string) bool {
	sig := strings.TrimSpace(suppliedSignature)
	if sig == "" || secret == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decoded)
}
