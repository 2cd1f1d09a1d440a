package hawalacrypto_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawala-app/hawala/internal/hawalacrypto"
)

func TestSecureStringRedaction(t *testing.T) {
	t.Parallel()
	ss, err := hawalacrypto.NewSecureString("hunter2")
	require.NoError(t, err)
	defer ss.Clear()

	assert.Equal(t, hawalacrypto.RedactionMarker, ss.String())
	assert.Equal(t, hawalacrypto.RedactionMarker, fmt.Sprintf("%s", ss))
	assert.Equal(t, hawalacrypto.RedactionMarker, fmt.Sprintf("%v", ss))
	assert.Equal(t, hawalacrypto.RedactionMarker, fmt.Sprintf("%#v", ss))

	// fmt output must never contain the secret
	assert.NotContains(t, fmt.Sprintf("%s %v %#v", ss, ss, ss), "hunter2")
}

func TestSecureStringMarshalText(t *testing.T) {
	t.Parallel()
	ss, err := hawalacrypto.NewSecureString("mnemonic words here")
	require.NoError(t, err)
	defer ss.Clear()

	out, err := json.Marshal(ss)
	require.NoError(t, err)
	assert.JSONEq(t, `"[REDACTED]"`, string(out))
}

func TestSecureStringReveal(t *testing.T) {
	t.Parallel()
	ss, err := hawalacrypto.NewSecureString("hunter2")
	require.NoError(t, err)

	assert.Equal(t, "hunter2", ss.Reveal())
	assert.Equal(t, 7, ss.Len())

	ss.Clear()
	assert.True(t, ss.IsCleared())
	assert.Empty(t, ss.Reveal())
	assert.Equal(t, 0, ss.Len())
}

func TestSecureStringInvalidUTF8(t *testing.T) {
	t.Parallel()
	_, err := hawalacrypto.NewSecureString(string([]byte{0xc3, 0x28}))
	require.ErrorIs(t, err, hawalacrypto.ErrInvalidUTF8)
}
