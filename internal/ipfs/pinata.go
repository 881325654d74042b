// Package ipfs pins certificate documents through the Pinata pinning API.
package ipfs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zde37/pinata-go-sdk/pinata"
)

// Pinner stores a JSON document on IPFS and returns its CID.
type Pinner interface {
	PinJSON(ctx context.Context, name string, doc any) (string, error)
	GatewayURL(cid string) string
}

// Default is nil when PINATA_JWT is not set.
var Default Pinner

var ErrNoCID = errors.New("pinata returned no IPFS hash")

// pinFunc is the SDK call Pinata makes; tests replace it.
type pinFunc func(doc any, opts *pinata.PinOptions) (string, error)

type Pinata struct {
	gateway string
	pin     pinFunc
}

func NewPinata(jwt, gateway string) *Pinata {
	client := pinata.New(pinata.NewAuthWithJWT(jwt))
	return &Pinata{
		gateway: strings.TrimRight(gateway, "/"),
		pin: func(doc any, opts *pinata.PinOptions) (string, error) {
			res, err := client.PinJSON(doc, opts)
			if err != nil {
				return "", err
			}
			return res.IpfsHash, nil
		},
	}
}

type pinResult struct {
	cid string
	err error
}

// PinJSON pins doc under name. The SDK call is not context aware, so a
// cancelled ctx returns early and the upload finishes in the background.
func (p *Pinata) PinJSON(ctx context.Context, name string, doc any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	opts := &pinata.PinOptions{
		PinataMetadata: pinata.PinataMetadata{
			Name:      name,
			KeyValues: map[string]interface{}{"app": "placementhub"},
		},
		PinataOptions: pinata.Options{CidVersion: 1},
	}

	done := make(chan pinResult, 1)
	go func() {
		cid, err := p.pin(doc, opts)
		done <- pinResult{cid: cid, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("pinata pin %s: %w", name, res.err)
		}
		if res.cid == "" {
			return "", ErrNoCID
		}
		return res.cid, nil
	}
}

func (p *Pinata) GatewayURL(cid string) string {
	return p.gateway + "/" + cid
}
