package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_String(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"+strings.Repeat("x", 6)+"\n  bob  \n"), &out)

	s, err := p.String("login", 5)
	require.NoError(t, err)
	assert.Equal(t, "bob", s)
	assert.Contains(t, out.String(), "Please enter login (1-5 characters): ")
	assert.Contains(t, out.String(), "login cannot be empty!")
	assert.Contains(t, out.String(), "login cannot be greater than 5 characters!")
}

func TestPrompter_NumbersAndMoney(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("0\n-3\nx\n4\nabc\n-2\n12.50\n7"), &out)

	n, err := p.PositiveInt("qty: ")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	m, err := p.Money("max: ")
	require.NoError(t, err)
	assert.True(t, m.Equal(decimal.RequireFromString("12.5")))
	assert.Contains(t, out.String(), "Amount cannot be negative!")

	c, err := p.Choice()
	require.NoError(t, err, "last line without newline is still read")
	assert.Equal(t, 7, c)

	_, err = p.Choice()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestPrompter_YesNo(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("maybe\nY\ny\nn\n"), &out)

	yes, err := p.YesNo("More")
	require.NoError(t, err)
	assert.True(t, yes)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter 'y' or 'n'."))

	yes, err = p.YesNo("More")
	require.NoError(t, err)
	assert.False(t, yes)
	assert.Contains(t, out.String(), "More (y/n)? ")
}

func TestPrompter_NonEmpty(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n  \nout for delivery\n"), &out)
	s, err := p.NonEmpty("status: ")
	require.NoError(t, err)
	assert.Equal(t, "out for delivery", s)
}
