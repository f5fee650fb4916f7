package webhook

import (
	"strings"
	"time"
)

// Category is the closed set of normalized record shapes (§4.11).
type Category string

const (
	CategoryPayment        Category = "payment"
	CategoryAuth           Category = "auth"
	CategoryInfrastructure Category = "infrastructure"
	CategoryUnknown        Category = "unknown"
)

// PaymentEvent is the normalized payment-category record.
type PaymentEvent struct {
	Platform      Provider
	Event         string
	Amount        float64
	Currency      string
	CustomerID    string
	TransactionID string
	Metadata      map[string]any
	OccurredAt    time.Time
	Raw           any
}

// AuthEvent is the normalized auth-category record.
type AuthEvent struct {
	Platform   Provider
	Event      string
	UserID     string
	Email      string
	Phone      string
	Metadata   map[string]any
	OccurredAt time.Time
	Raw        any
}

// InfrastructureEvent is the normalized infrastructure-category record.
type InfrastructureEvent struct {
	Platform     Provider
	Event        string
	ProjectID    string
	DeploymentID string
	Status       string
	Metadata     map[string]any
	OccurredAt   time.Time
	Raw          any
}

// UnknownEvent is returned when normalization is requested for a provider
// the normalizer does not recognize (§4.11).
type UnknownEvent struct {
	Platform Provider
	Warning  string
	Raw      any
}

// categoryByProvider is the subset of provider -> category assignments the
// normalizer recognizes out of the box (§4.11). Callers can override via
// Options.NormalizeCategory for providers not listed here.
var categoryByProvider = map[Provider]Category{
	ProviderStripe:   CategoryPayment,
	ProviderPolar:    CategoryPayment,
	ProviderClerk:    CategoryAuth,
	ProviderSupabase: CategoryAuth,
	ProviderVercel:   CategoryInfrastructure,
}

// Normalize maps a verified (provider, body) pair into a category record
// (C12, §4.11). It is a pure, synchronous, post-verification transform; it
// never fails, falling back to an UnknownEvent envelope instead.
func Normalize(provider Provider, body any, opts Options) any {
	category, recognized := categoryByProvider[provider]
	if opts.NormalizeCategory != "" {
		category, recognized = opts.NormalizeCategory, true
	}
	if !recognized {
		return unknownEvent(provider, body, opts)
	}

	m, _ := body.(map[string]any)

	switch category {
	case CategoryPayment:
		return paymentEvent(provider, m, body, opts)
	case CategoryAuth:
		return authEvent(provider, m, body, opts)
	case CategoryInfrastructure:
		return infrastructureEvent(provider, m, body, opts)
	default:
		return unknownEvent(provider, body, opts)
	}
}

func unknownEvent(provider Provider, body any, opts Options) UnknownEvent {
	e := UnknownEvent{Platform: provider, Warning: "no normalization mapping for provider " + string(provider)}
	if opts.IncludeRaw {
		e.Raw = body
	}
	return e
}

func paymentEvent(provider Provider, m map[string]any, body any, opts Options) PaymentEvent {
	e := PaymentEvent{
		Platform:      provider,
		Event:         firstField(m, "type", "event"),
		Amount:        floatField(m, "amount", "data.amount"),
		Currency:      strings.ToUpper(firstField(m, "currency", "data.currency")),
		CustomerID:    firstField(m, "customer_id", "customer", "data.customer_id"),
		TransactionID: firstField(m, "id", "data.id"),
		Metadata:      m,
		OccurredAt:    occurredAt(m),
	}
	if opts.IncludeRaw {
		e.Raw = body
	}
	return e
}

func authEvent(provider Provider, m map[string]any, body any, opts Options) AuthEvent {
	e := AuthEvent{
		Platform:   provider,
		Event:      firstField(m, "type", "event"),
		UserID:     firstField(m, "user_id", "data.id", "id"),
		Email:      firstField(m, "email", "data.email_addresses[0].email_address"),
		Phone:      firstField(m, "phone", "data.phone_numbers[0].phone_number"),
		Metadata:   m,
		OccurredAt: occurredAt(m),
	}
	if opts.IncludeRaw {
		e.Raw = body
	}
	return e
}

func infrastructureEvent(provider Provider, m map[string]any, body any, opts Options) InfrastructureEvent {
	e := InfrastructureEvent{
		Platform:     provider,
		Event:        firstField(m, "type", "event"),
		ProjectID:    firstField(m, "project_id", "payload.project.id"),
		DeploymentID: firstField(m, "deployment_id", "payload.deployment.id", "id"),
		Status:       firstField(m, "status", "state"),
		Metadata:     m,
		OccurredAt:   occurredAt(m),
	}
	if opts.IncludeRaw {
		e.Raw = body
	}
	return e
}

func firstField(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if v := pathString(m, p); v != "" {
			return v
		}
	}
	return ""
}

func floatField(m map[string]any, paths ...string) float64 {
	for _, p := range paths {
		if v, ok := navigate(m, p); ok {
			if f, ok := v.(float64); ok {
				return f
			}
		}
	}
	return 0
}

func occurredAt(m map[string]any) time.Time {
	for _, p := range []string{"created", "created_at", "occurred_at", "timestamp"} {
		v, ok := navigate(m, p)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return time.Unix(int64(t), 0).UTC()
		case string:
			if parsed, err := time.Parse(time.RFC3339, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
