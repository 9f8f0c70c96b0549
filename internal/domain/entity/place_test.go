package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceCertification(t *testing.T) {
	cases := map[string]string{
		"APADEA":    CertificationAPADEA,
		"Comunidad": CertificationCommunity,
		"":          CertificationCommunity,
		"apadea":    CertificationCommunity,
	}

	for stored, want := range cases {
		p := Place{Certificacion: stored}
		assert.Equal(t, want, p.Certification(), "stored %q", stored)
	}
}
