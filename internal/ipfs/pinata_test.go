package ipfs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zde37/pinata-go-sdk/pinata"
)

func TestPinJSON(t *testing.T) {
	p := NewPinata("test-jwt", "https://gw.example/ipfs/")
	require.NotNil(t, p.pin)

	var gotDoc any
	var gotOpts *pinata.PinOptions
	p.pin = func(doc any, opts *pinata.PinOptions) (string, error) {
		gotDoc, gotOpts = doc, opts
		return "QmTest", nil
	}

	cid, err := p.PinJSON(context.Background(), "cert-1", map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, "QmTest", cid)
	assert.Equal(t, "https://gw.example/ipfs/QmTest", p.GatewayURL(cid))

	assert.Equal(t, map[string]string{"a": "b"}, gotDoc)
	require.NotNil(t, gotOpts)
	assert.Equal(t, "cert-1", gotOpts.PinataMetadata.Name)
	assert.Equal(t, 1, gotOpts.PinataOptions.CidVersion)
}

func TestPinJSONErrors(t *testing.T) {
	p := NewPinata("bad", "")

	p.pin = func(any, *pinata.PinOptions) (string, error) {
		return "", errors.New("map[error:unauthorized]")
	}
	_, err := p.PinJSON(context.Background(), "x", map[string]int{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	p.pin = func(any, *pinata.PinOptions) (string, error) { return "", nil }
	_, err = p.PinJSON(context.Background(), "x", map[string]int{})
	assert.ErrorIs(t, err, ErrNoCID)
}

func TestPinJSONCancelled(t *testing.T) {
	p := NewPinata("jwt", "")
	called := false
	p.pin = func(any, *pinata.PinOptions) (string, error) {
		called = true
		return "QmTest", nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PinJSON(ctx, "x", map[string]int{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestPinJSONStopsWaitingOnCancel(t *testing.T) {
	p := NewPinata("jwt", "")
	release := make(chan struct{})
	defer close(release)
	p.pin = func(any, *pinata.PinOptions) (string, error) {
		<-release
		return "QmLate", nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	_, err := p.PinJSON(ctx, "x", map[string]int{})
	assert.ErrorIs(t, err, context.Canceled)
}
