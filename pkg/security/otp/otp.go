// Package otp generates the numeric one-time codes mailed to users.
package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

const (
	Digits = 6

	minCode = 100000
	span    = 900000
)

// Generator draws codes uniformly from 100000–999999 using crypto/rand.
type Generator struct {
	reader io.Reader
}

func NewGenerator() *Generator {
	return &Generator{reader: rand.Reader}
}

func (g *Generator) Generate() (string, error) {
	n, err := rand.Int(g.reader, big.NewInt(span))
	if err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return strconv.FormatInt(n.Int64()+minCode, 10), nil
}
