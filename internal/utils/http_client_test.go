package utils

import (
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{})

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Type(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{})

	// Ensure the embedded client is actually a *resty.Client
	if _, ok := interface{}(client.Client).(*resty.Client); !ok {
		t.Fatalf("expected embedded client to be *resty.Client, got %T", client.Client)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	// Create two clients and make sure they don't share the same underlying resty.Client
	client1 := NewHTTPClient(HTTPClientOptions{})
	client2 := NewHTTPClient(HTTPClientOptions{})

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestHTTPClient_EmbeddedClientUsable(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{})

	// Just check that we can call a basic method on the embedded resty client
	req := client.R()
	if req == nil {
		t.Fatal("expected non-nil request from embedded resty client")
	}
}

func TestNewHTTPClient_AppliesOptions(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{
		BaseURL:    "https://blob.example.com",
		Token:      "secret",
		Timeout:    5 * time.Second,
		RetryCount: 2,
	})

	if client.BaseURL != "https://blob.example.com" {
		t.Fatalf("unexpected base url %q", client.BaseURL)
	}
	if client.Token != "secret" {
		t.Fatalf("unexpected token %q", client.Token)
	}
	if client.GetClient().Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", client.GetClient().Timeout)
	}
	if client.RetryCount != 2 {
		t.Fatalf("unexpected retry count %d", client.RetryCount)
	}
}
