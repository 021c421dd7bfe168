package textlink

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ravetagbd/ravetag-backend/pkg/config"
)

func testConfig() config.TextlinkConfig {
	return config.TextlinkConfig{
		APIKey:        "test-key",
		ServiceName:   "RaveTag",
		SourceCountry: "BD",
		CodeExpiry:    10 * time.Minute,
	}
}

func TestClientSendVerificationRequest(t *testing.T) {
	const expectedURL = "http://sms.test/api/send-verification-sms"
	respBody := `{"ok":true,"message":"sent"}`

	var capturedURL string
	var capturedHeaders http.Header

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedHeaders = req.Header.Clone()

		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		var payload map[string]any
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		if payload["phone_number"] != "+8801700000000" {
			t.Fatalf("unexpected phone %q", payload["phone_number"])
		}
		if payload["service_name"] != "RaveTag" {
			t.Fatalf("unexpected service name %q", payload["service_name"])
		}
		if payload["source_country"] != "BD" {
			t.Fatalf("unexpected source country %q", payload["source_country"])
		}

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithBaseURL("http://sms.test/api"), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.SendVerification(context.Background(), "+8801700000000"); err != nil {
		t.Fatalf("send verification: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedHeaders.Get("Authorization") != "Bearer test-key" {
		t.Fatalf("api key header missing")
	}
}

func TestClientSendVerificationProviderRejection(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"ok":false,"message":"no credit"}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.SendVerification(context.Background(), "+8801700000000"); err == nil {
		t.Fatal("expected rejection to surface as an error")
	}
}

func TestClientVerifyCodeRequest(t *testing.T) {
	tests := []struct {
		name     string
		respBody string
		want     bool
	}{
		{name: "valid code", respBody: `{"ok":true,"valid":true}`, want: true},
		{name: "wrong code", respBody: `{"ok":true,"valid":false}`, want: false},
		{name: "provider not ok", respBody: `{"ok":false,"message":"expired"}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
				if got := req.URL.Path; !strings.HasSuffix(got, "/verify-code") {
					t.Fatalf("unexpected path %q", got)
				}
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(strings.NewReader(tt.respBody)),
					Header:     http.Header{},
				}, nil
			})

			client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
			if err != nil {
				t.Fatalf("new client: %v", err)
			}

			valid, err := client.VerifyCode(context.Background(), "+8801700000000", "4821")
			if err != nil {
				t.Fatalf("verify code: %v", err)
			}
			if valid != tt.want {
				t.Fatalf("expected valid=%v got %v", tt.want, valid)
			}
		})
	}
}

func TestClientVerifyCodeUpstreamFailure(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream down")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.VerifyCode(context.Background(), "+8801700000000", "4821"); err == nil {
		t.Fatal("expected upstream failure to return an error")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "  "
	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected missing api key to be rejected")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
