package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureRoundTrip(t *testing.T) {
	sig := Signature("txn-1", "ord-1", 150.00)
	assert.True(t, VerifySignature("txn-1", "ord-1", 150.00, sig))
}

func TestSignatureRejectsTampering(t *testing.T) {
	sig := Signature("txn-1", "ord-1", 150.00)
	assert.False(t, VerifySignature("txn-1", "ord-1", 151.00, sig))
	assert.False(t, VerifySignature("txn-2", "ord-1", 150.00, sig))
	assert.False(t, VerifySignature("txn-1", "ord-2", 150.00, sig))
	assert.False(t, VerifySignature("txn-1", "ord-1", 150.00, ""))
}
