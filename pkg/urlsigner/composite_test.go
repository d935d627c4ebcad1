package urlsigner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/urlsigner/pkg/query"
	"github.com/dmitrymomot/urlsigner/pkg/urlsigner"
)

const monkeySecret = "random_monkey"

func newTestComposite(t *testing.T) *urlsigner.Composite {
	t.Helper()
	c, err := urlsigner.NewCompositeAt(time.Now().AddDate(20, 0, 0), monkeySecret)
	require.NoError(t, err)
	return c
}

func TestNewComposite_Validation(t *testing.T) {
	t.Parallel()

	future := time.Now().AddDate(20, 0, 0)

	t.Run("blank secret", func(t *testing.T) {
		t.Parallel()
		c, err := urlsigner.NewCompositeAt(future, "      ")
		assert.Nil(t, c)
		assert.ErrorIs(t, err, urlsigner.ErrMissingValue)
		assert.ErrorContains(t, err, `"secret"`)
	})

	t.Run("empty secret", func(t *testing.T) {
		t.Parallel()
		_, err := urlsigner.NewCompositeAt(future, "")
		assert.ErrorIs(t, err, urlsigner.ErrMissingValue)
	})

	for name, at := range map[string]time.Time{
		"twenty years ago": time.Now().AddDate(-20, 0, 0),
		"ten years ago":    time.Now().AddDate(-10, 0, 0),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := urlsigner.NewCompositeAt(at, monkeySecret)
			assert.ErrorIs(t, err, urlsigner.ErrExpirationInPast)
		})
	}

	t.Run("ten days ago", func(t *testing.T) {
		t.Parallel()
		_, err := urlsigner.NewCompositeAfter(-10*24*time.Hour, monkeySecret)
		assert.ErrorIs(t, err, urlsigner.ErrExpirationInPast)
	})

	t.Run("nil inner", func(t *testing.T) {
		t.Parallel()
		_, err := urlsigner.NewComposite(nil, monkeySecret)
		assert.ErrorIs(t, err, urlsigner.ErrInvalidConfiguration)
	})

	t.Run("parameter collision", func(t *testing.T) {
		t.Parallel()
		exp, err := urlsigner.NewExpirationAt(future, urlsigner.WithParameterName("signature"))
		require.NoError(t, err)
		_, err = urlsigner.NewComposite(exp, monkeySecret)
		assert.ErrorIs(t, err, urlsigner.ErrInvalidConfiguration)
	})

	t.Run("custom outer name", func(t *testing.T) {
		t.Parallel()
		c, err := urlsigner.NewCompositeAt(future, monkeySecret, urlsigner.WithParameterName("token"))
		require.NoError(t, err)
		assert.Equal(t, "token", c.ParameterName())
	})
}

func TestComposite_EncryptDecrypt(t *testing.T) {
	t.Parallel()

	c := newTestComposite(t)
	u := mustParse(t, "http://myapp.com/?foo=bar&baz=qux")

	encrypted, err := c.Encrypt(u)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo", "baz", "expires", "signature"}, query.Keys(encrypted))
	sig, _ := query.Get(encrypted, "signature")
	assert.Regexp(t, lowerHex, sig)
	assert.Len(t, sig, 32)

	decrypted, err := c.Decrypt(mustParse(t, encrypted.String()))
	require.NoError(t, err)
	assert.Equal(t, u.String(), decrypted.String())
}

func TestComposite_DecryptByAnotherInstance(t *testing.T) {
	t.Parallel()

	signer := newTestComposite(t)
	encrypted, err := signer.Encrypt(mustParse(t, "http://myapp.com/?foo=bar"))
	require.NoError(t, err)

	verifier, err := urlsigner.NewCompositeAfter(time.Minute, monkeySecret)
	require.NoError(t, err)
	decrypted, err := verifier.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "http://myapp.com/?foo=bar", decrypted.String())

	other, err := urlsigner.NewCompositeAfter(time.Minute, "another_monkey")
	require.NoError(t, err)
	_, err = other.Decrypt(encrypted)
	assert.ErrorIs(t, err, urlsigner.ErrCorruptedURL)
}

func TestComposite_Encrypt_AlreadyPresent(t *testing.T) {
	t.Parallel()

	c := newTestComposite(t)
	for _, raw := range []string{
		"http://myapp.com/?foo=bar&baz=qux&expires=baz",
		"http://myapp.com/?foo=bar&baz=qux&signature=baz",
	} {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			_, err := c.Encrypt(mustParse(t, raw))
			assert.ErrorIs(t, err, urlsigner.ErrAlreadyPresent)
		})
	}
}

func TestComposite_Decrypt_Failures(t *testing.T) {
	t.Parallel()

	c := newTestComposite(t)
	encrypted, err := c.Encrypt(mustParse(t, "http://myapp.com/?foo=bar"))
	require.NoError(t, err)
	expires, _ := query.Get(encrypted, "expires")
	sig, _ := query.Get(encrypted, "signature")

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "no signature", raw: "http://myapp.com/?foo=bar&expires=" + expires, wantErr: urlsigner.ErrMissingParameter},
		{name: "empty signature", raw: "http://myapp.com/?foo=bar&expires=" + expires + "&signature=", wantErr: urlsigner.ErrMissingValue},
		{name: "non hex signature", raw: "http://myapp.com/?expires=" + expires + "&signature=foobar", wantErr: urlsigner.ErrWrongValue},
		{name: "forged", raw: "http://myapp.com/?expires=1123690544&signature=93e02326d7572632dd6edfa2665f2743", wantErr: urlsigner.ErrCorruptedURL},
		{name: "non numeric expires", raw: "http://myapp.com/?expires=foobar&signature=93e02326d7572632dd6edfa2665f2743", wantErr: urlsigner.ErrCorruptedURL},
		{name: "expires changed", raw: "http://myapp.com/?foo=bar&expires=9" + expires + "&signature=" + sig, wantErr: urlsigner.ErrCorruptedURL},
		{name: "expires dropped", raw: "http://myapp.com/?foo=bar&signature=" + sig, wantErr: urlsigner.ErrCorruptedURL},
		{name: "payload changed", raw: "http://myapp.com/?foo=baz&expires=" + expires + "&signature=" + sig, wantErr: urlsigner.ErrCorruptedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.Decrypt(mustParse(t, tt.raw))
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComposite_Decrypt_Elapsed(t *testing.T) {
	t.Parallel()

	clock, advance := fixedClock(time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC))
	c, err := urlsigner.NewCompositeAfter(time.Minute, monkeySecret, urlsigner.WithClock(clock))
	require.NoError(t, err)

	encrypted, err := c.Encrypt(mustParse(t, "https://example.com/file"))
	require.NoError(t, err)

	advance(time.Hour)

	_, err = c.Decrypt(encrypted)
	assert.ErrorIs(t, err, urlsigner.ErrCorruptedURL)
}

func TestComposite_SignerValidate(t *testing.T) {
	t.Parallel()

	s := urlsigner.New(newTestComposite(t))

	signed, err := s.Encrypt("http://myapp.com")
	require.NoError(t, err)

	u := mustParse(t, signed)
	assert.True(t, query.Has(u, "expires"))
	assert.True(t, query.Has(u, "signature"))
	assert.True(t, s.Validate(signed))

	for name, raw := range map[string]string{
		"expires far in the past": "http://myapp.com?expires=1123690544&signature=93e02326d7572632dd6edfa2665f2743",
		"non integer expires":     "http://myapp.com?expires=foobar&signature=93e02326d7572632dd6edfa2665f2743",
		"non hex signature":       "http://myapp.com?expires=4594900544&signature=foobar",
	} {
		assert.False(t, s.Validate(raw), name)
	}
}

func TestComposite_Decrypt_DuplicateParameters(t *testing.T) {
	t.Parallel()

	c := newTestComposite(t)
	encrypted, err := c.Encrypt(mustParse(t, "http://myapp.com/?foo=bar"))
	require.NoError(t, err)
	expires, _ := query.Get(encrypted, "expires")
	sig, _ := query.Get(encrypted, "signature")

	_, err = c.Decrypt(mustParse(t, encrypted.String()+"&signature=deadbeef"))
	assert.ErrorIs(t, err, urlsigner.ErrWrongValue)

	// The outer digest covers the URL, so a repeated inner parameter is
	// caught there before the inner strategy runs.
	_, err = c.Decrypt(mustParse(t, "http://myapp.com/?foo=bar&expires="+expires+"&expires="+expires+"&signature="+sig))
	assert.ErrorIs(t, err, urlsigner.ErrCorruptedURL)
}
