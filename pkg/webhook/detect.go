package webhook

import "strings"

// detectRule pairs a signature-bearing header with the provider it
// identifies. Rules are evaluated in order; the first match wins (§4.9).
type detectRule struct {
	header   string
	provider Provider
}

var detectRules = []detectRule{
	{"stripe-signature", ProviderStripe},
	{"x-hub-signature-256", ProviderGitHub},
	{"svix-signature", ProviderClerk},
	{"workos-signature", ProviderWorkOS},
	{"paddle-signature", ProviderPaddle},
	{"x-razorpay-signature", ProviderRazorpay},
	{"x-signature", ProviderLemonSqueezy},
	{"x-wc-webhook-signature", ProviderWooCommerce},
	{"x-fal-webhook-signature", ProviderFal},
	{"x-fal-signature", ProviderFal},
	{"sentry-hook-signature", ProviderSentry},
	{"x-grafana-alerting-signature", ProviderGrafana},
	{"x-doppler-signature", ProviderDoppler},
	{"sanity-webhook-signature", ProviderSanity},
	{"x-shopify-hmac-sha256", ProviderShopify},
	{"x-vercel-signature", ProviderVercel},
	{"x-gitlab-token", ProviderGitLab},
}

// DetectProvider inspects req's headers and guesses the sending provider
// (C10, §4.9). "webhook-signature" is ambiguous among the standard-webhooks
// senders and is disambiguated by a user-agent substring. Returns
// ProviderUnknown when nothing matches.
func DetectProvider(req VerificationRequest) Provider {
	for _, rule := range detectRules {
		if req.Headers.Get(rule.header) != "" {
			return rule.provider
		}
	}

	if req.Headers.Get("webhook-signature") != "" {
		ua := strings.ToLower(req.Headers.Get("user-agent"))
		switch {
		case strings.Contains(ua, "polar"):
			return ProviderPolar
		case strings.Contains(ua, "replicate"):
			return ProviderReplicate
		default:
			return ProviderDodoPayments
		}
	}

	return ProviderUnknown
}
