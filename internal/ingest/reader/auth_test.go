package reader

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(input, phone, password string) (*terminalAuth, *bytes.Buffer, *[]string) {
	out := &bytes.Buffer{}
	warnings := &[]string{}

	return &terminalAuth{
		phone:    phone,
		password: password,
		in:       bufio.NewReader(strings.NewReader(input)),
		out:      out,
		warn:     func(msg string) { *warnings = append(*warnings, msg) },
	}, out, warnings
}

func TestTerminalAuthPhoneFromConfig(t *testing.T) {
	a, out, warnings := newTestAuth("", " +358 40 123-4567 ", "")

	phone, err := a.Phone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "+358401234567", phone)
	assert.Empty(t, out.String())
	assert.Empty(t, *warnings)
}

func TestTerminalAuthPromptsForMissingValues(t *testing.T) {
	a, out, warnings := newTestAuth("12345\n54321\nsecret", "", "")

	phone, err := a.Phone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12345", phone)
	assert.Len(t, *warnings, 1, "short phone numbers are flagged")

	code, err := a.Code(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "54321", code)

	password, err := a.Password(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", password)

	assert.Equal(t, "Enter phone: Enter code: Enter 2FA password: ", out.String())
}

func TestTerminalAuthConfiguredPassword(t *testing.T) {
	a, out, _ := newTestAuth("", "", "hunter2")

	password, err := a.Password(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)
	assert.Empty(t, out.String())
}

func TestTerminalAuthClosedInput(t *testing.T) {
	a, _, _ := newTestAuth("", "", "")

	_, err := a.Code(context.Background(), nil)
	require.Error(t, err)
}

func TestTerminalAuthSignUpUnsupported(t *testing.T) {
	a, _, _ := newTestAuth("", "", "")

	_, err := a.SignUp(context.Background())
	require.ErrorIs(t, err, ErrSignupNotSupported)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+35****67", maskPhone("+358401234567"))
	assert.Equal(t, "****", maskPhone("123"))
}
