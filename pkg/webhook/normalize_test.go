package webhook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webhookguard/pkg/webhook"
)

func TestNormalize_Payment(t *testing.T) {
	body := decodeBody(t, `{"type":"charge.succeeded","amount":1500,"currency":"eur","id":"ch_1","customer_id":"cus_1"}`)

	result := webhook.Normalize(webhook.ProviderStripe, body, webhook.Options{})
	event, ok := result.(webhook.PaymentEvent)
	require.True(t, ok)
	assert.Equal(t, "charge.succeeded", event.Event)
	assert.Equal(t, float64(1500), event.Amount)
	assert.Equal(t, "EUR", event.Currency)
	assert.Equal(t, "cus_1", event.CustomerID)
	assert.Equal(t, "ch_1", event.TransactionID)
	assert.Nil(t, event.Raw)
}

func TestNormalize_Payment_IncludeRaw(t *testing.T) {
	body := decodeBody(t, `{"type":"order_created","data":{"id":"123"}}`)

	result := webhook.Normalize(webhook.ProviderPolar, body, webhook.Options{IncludeRaw: true})
	event, ok := result.(webhook.PaymentEvent)
	require.True(t, ok)
	assert.Equal(t, body, event.Raw)
}

func TestNormalize_Auth(t *testing.T) {
	body := decodeBody(t, `{"type":"user.created","data":{"id":"user_1","email_addresses":[{"email_address":"a@example.com"}]}}`)

	result := webhook.Normalize(webhook.ProviderClerk, body, webhook.Options{})
	event, ok := result.(webhook.AuthEvent)
	require.True(t, ok)
	assert.Equal(t, "user.created", event.Event)
	assert.Equal(t, "user_1", event.UserID)
	assert.Equal(t, "a@example.com", event.Email)
}

func TestNormalize_Infrastructure(t *testing.T) {
	body := decodeBody(t, `{"type":"deployment.ready","id":"dpl_1","status":"READY"}`)

	result := webhook.Normalize(webhook.ProviderVercel, body, webhook.Options{})
	event, ok := result.(webhook.InfrastructureEvent)
	require.True(t, ok)
	assert.Equal(t, "deployment.ready", event.Event)
	assert.Equal(t, "dpl_1", event.DeploymentID)
	assert.Equal(t, "READY", event.Status)
}

func TestNormalize_UnknownProvider(t *testing.T) {
	body := decodeBody(t, `{"anything":"goes"}`)

	result := webhook.Normalize(webhook.Provider("some-unrecognized-provider"), body, webhook.Options{IncludeRaw: true})
	event, ok := result.(webhook.UnknownEvent)
	require.True(t, ok)
	assert.NotEmpty(t, event.Warning)
	assert.Equal(t, body, event.Raw)
}

func TestNormalize_CategoryOverride(t *testing.T) {
	body := decodeBody(t, `{"type":"x","project_id":"proj_1","deployment_id":"dep_1"}`)

	result := webhook.Normalize(webhook.Provider("some-unrecognized-provider"), body, webhook.Options{
		NormalizeCategory: webhook.CategoryInfrastructure,
	})
	_, ok := result.(webhook.InfrastructureEvent)
	assert.True(t, ok)
}
