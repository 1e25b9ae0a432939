package webhook

import (
	"errors"
	"net"
	"testing"
)

func TestValidateWebhookURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		errType error
	}{
		{
			name: "valid https URL",
			url:  "https://1.1.1.1/webhook",
		},
		{
			name: "valid http URL",
			url:  "http://8.8.8.8/webhook",
		},
		{
			name: "valid URL with port",
			url:  "https://1.1.1.1:8080/webhook",
		},
		{
			name:    "ftp scheme",
			url:     "ftp://example.com/webhook",
			wantErr: true,
			errType: ErrInvalidScheme,
		},
		{
			name:    "file scheme",
			url:     "file:///etc/passwd",
			wantErr: true,
			errType: ErrInvalidScheme,
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
			errType: ErrInvalidURL,
		},
		{
			name:    "localhost",
			url:     "http://localhost/webhook",
			wantErr: true,
			errType: ErrPrivateIP,
		},
		{
			name:    "localhost subdomain",
			url:     "http://foo.localhost/webhook",
			wantErr: true,
			errType: ErrPrivateIP,
		},
		{
			name:    "loopback IP",
			url:     "http://127.0.0.1/webhook",
			wantErr: true,
			errType: ErrPrivateIP,
		},
		{
			name:    "private 10.x IP",
			url:     "http://10.0.0.1/webhook",
			wantErr: true,
			errType: ErrPrivateIP,
		},
		{
			name:    "private 192.168.x IP",
			url:     "https://192.168.1.1/webhook",
			wantErr: true,
			errType: ErrPrivateIP,
		},
		{
			name:    "link-local metadata IP",
			url:     "http://169.254.169.254/latest/meta-data/",
			wantErr: true,
			errType: ErrPrivateIP,
		},
		{
			name:    "shared address space",
			url:     "http://100.64.0.1/webhook",
			wantErr: true,
			errType: ErrPrivateIP,
		},
		{
			name:    "unspecified IP",
			url:     "http://0.0.0.0/webhook",
			wantErr: true,
			errType: ErrPrivateIP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWebhookURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWebhookURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
				return
			}
			if tt.errType != nil && !errors.Is(err, tt.errType) {
				t.Errorf("ValidateWebhookURL(%q) error = %v, want %v", tt.url, err, tt.errType)
			}
		})
	}
}

func TestValidateIPBeforeDial(t *testing.T) {
	tests := []struct {
		ip      string
		wantErr bool
	}{
		{"1.1.1.1", false},
		{"8.8.8.8", false},
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.0.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"::1", true},
		{"fe80::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			err := ValidateIPBeforeDial(net.ParseIP(tt.ip))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIPBeforeDial(%s) error = %v, wantErr %v", tt.ip, err, tt.wantErr)
			}
		})
	}
}
