package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(ClientParams{Name: "Acme Pty Ltd"})

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "Net 30", client.PaymentTerms)
	assert.Equal(t, "USD", client.Currency)
	assert.True(t, client.Active)
}

func TestClientValidate(t *testing.T) {
	valid := NewClient(ClientParams{Name: "Acme", Email: "billing@acme.com", Phone: "+61 412 345 678"})
	result := valid.Validate()
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	missingName := NewClient(ClientParams{})
	result = missingName.Validate()
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "client name is required")

	badEmail := NewClient(ClientParams{Name: "Acme", Email: "not-an-email"})
	result = badEmail.Validate()
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "invalid email format")

	badPhone := NewClient(ClientParams{Name: "Acme", Phone: "abc"})
	result = badPhone.Validate()
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "invalid phone number format")
}

func TestAddressUnmarshalFreeform(t *testing.T) {
	var addr Address
	require.NoError(t, json.Unmarshal([]byte(`"1 Main St, Sydney"`), &addr))
	assert.Equal(t, "1 Main St, Sydney", addr.String())
}

func TestAddressUnmarshalStructured(t *testing.T) {
	var addr Address
	require.NoError(t, json.Unmarshal([]byte(`{"street":"1 Main St","city":"Sydney","state":"NSW","zipCode":"2000","country":"Australia"}`), &addr))
	assert.Equal(t, "1 Main St, Sydney, NSW, 2000, Australia", addr.String())
}

func TestAddressMarshalRoundTrip(t *testing.T) {
	freeform := Address{Freeform: "1 Main St"}
	data, err := json.Marshal(freeform)
	require.NoError(t, err)
	assert.Equal(t, `"1 Main St"`, string(data))

	structured := Address{Street: "1 Main St", City: "Sydney"}
	data, err = json.Marshal(structured)
	require.NoError(t, err)
	assert.JSONEq(t, `{"street":"1 Main St","city":"Sydney"}`, string(data))
}

func TestClientContactInfo(t *testing.T) {
	client := NewClient(ClientParams{Name: "Acme", Email: "a@b.co", Phone: "0412345678"})
	assert.Equal(t, "Email: a@b.co | Phone: 0412345678", client.ContactInfo())

	emailOnly := NewClient(ClientParams{Name: "Acme", Email: "a@b.co"})
	assert.Equal(t, "Email: a@b.co", emailOnly.ContactInfo())
}

func TestClientActivation(t *testing.T) {
	client := NewClient(ClientParams{Name: "Acme"})
	client.Deactivate()
	assert.False(t, client.Active)
	client.Activate()
	assert.True(t, client.Active)
}

func TestClientSummary(t *testing.T) {
	client := NewClient(ClientParams{
		Name:    "Acme",
		Company: "Acme Pty Ltd",
		Email:   "billing@acme.com",
		Phone:   "0412345678",
	})

	summary := client.Summary()
	assert.Equal(t, client.ID, summary.ID)
	assert.Equal(t, "Acme", summary.Name)
	assert.Equal(t, "Acme Pty Ltd", summary.Company)
	assert.Equal(t, "billing@acme.com", summary.Email)
	assert.Equal(t, "USD", summary.Currency)
	assert.Equal(t, "Net 30", summary.PaymentTerms)
	assert.True(t, summary.Active)
	assert.Equal(t, client.CreatedAt, summary.CreatedAt)
}

func TestClientApplyPatch(t *testing.T) {
	client := NewClient(ClientParams{Name: "Acme"})
	id := client.ID
	created := client.CreatedAt

	email := "ap@acme.com"
	notes := "priority account"
	client.Apply(ClientPatch{Email: &email, Notes: &notes})

	assert.Equal(t, id, client.ID)
	assert.Equal(t, created, client.CreatedAt)
	assert.Equal(t, "ap@acme.com", client.Email)
	assert.Equal(t, "priority account", client.Notes)
}
