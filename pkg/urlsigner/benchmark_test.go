package urlsigner_test

import (
	"testing"
	"time"

	"github.com/dmitrymomot/urlsigner/pkg/urlsigner"
)

func BenchmarkHMAC_Encrypt(b *testing.B) {
	mac, err := urlsigner.NewHMAC(urlsigner.SHA256, "secret")
	if err != nil {
		b.Fatal(err)
	}
	u := mustParse(b, "https://example.com/files/report.pdf?user=42&team=7")

	b.ReportAllocs()
	for b.Loop() {
		if _, err := mac.Encrypt(u); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPipeline_Decrypt(b *testing.B) {
	exp, err := urlsigner.NewExpirationAfter(time.Hour)
	if err != nil {
		b.Fatal(err)
	}
	mac, err := urlsigner.NewHMAC(urlsigner.SHA256, "secret")
	if err != nil {
		b.Fatal(err)
	}
	p := urlsigner.NewPipeline(exp, mac)
	signed, err := p.Encrypt(mustParse(b, "https://example.com/files/report.pdf?user=42"))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.Decrypt(signed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComposite_Decrypt(b *testing.B) {
	c, err := urlsigner.NewCompositeAfter(time.Hour, "random_monkey")
	if err != nil {
		b.Fatal(err)
	}
	signed, err := c.Encrypt(mustParse(b, "https://example.com/files/report.pdf?user=42"))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := c.Decrypt(signed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSigner_Validate(b *testing.B) {
	mac, err := urlsigner.NewHMAC(urlsigner.SHA256, "secret")
	if err != nil {
		b.Fatal(err)
	}
	s := urlsigner.New(mac)
	signed, err := s.Encrypt("https://example.com/files/report.pdf?user=42")
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		s.Validate(signed)
	}
}
