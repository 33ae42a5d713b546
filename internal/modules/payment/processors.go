package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"hotelreserve/internal/domain"
)

// ErrChargeDeclined is what a simulated gateway returns when the charge
// does not go through.
var ErrChargeDeclined = errors.New("charge declined by payment gateway")

// Processor is a payment gateway. The implementations here are simulated:
// they succeed with a fixed probability and mint gateway-style transaction
// ids, which is enough to drive the payment lifecycle end to end.
type Processor interface {
	Name() string
	Charge(ctx context.Context, amount float64, currency string) (string, error)
	Refund(ctx context.Context, transactionID string, amount float64) error
}

type simulatedProcessor struct {
	name        string
	prefix      string
	successRate float64
	roll        func() float64
}

func (p *simulatedProcessor) Name() string { return p.name }

func (p *simulatedProcessor) Charge(_ context.Context, amount float64, _ string) (string, error) {
	if amount <= 0 {
		return "", ErrChargeDeclined
	}
	if p.roll() >= p.successRate {
		return "", ErrChargeDeclined
	}
	return p.prefix + randomHex(12), nil
}

func (p *simulatedProcessor) Refund(_ context.Context, transactionID string, amount float64) error {
	if transactionID == "" || amount <= 0 {
		return fmt.Errorf("%s: invalid refund request", p.name)
	}
	return nil
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func randomRoll() float64 {
	// crypto/rand keeps the simulation free of global math/rand state
	v, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		panic(err)
	}
	return float64(v.Int64()) / 1_000_000
}

// NewStripeProcessor simulates a Stripe-like gateway with a 75% charge
// success rate.
func NewStripeProcessor() Processor {
	return &simulatedProcessor{name: "stripe", prefix: "ch_", successRate: 0.75, roll: randomRoll}
}

// NewPayPalProcessor simulates a PayPal-like gateway with a 67% charge
// success rate.
func NewPayPalProcessor() Processor {
	return &simulatedProcessor{name: "paypal", prefix: "PAYID-", successRate: 0.67, roll: randomRoll}
}

// ProcessorsByMethod maps every supported payment method to its gateway.
// Card payments go through the Stripe simulation.
func ProcessorsByMethod() map[domain.PaymentMethod]Processor {
	stripe := NewStripeProcessor()
	return map[domain.PaymentMethod]Processor{
		domain.MethodCreditCard: stripe,
		domain.MethodDebitCard:  stripe,
		domain.MethodStripe:     stripe,
		domain.MethodPayPal:     NewPayPalProcessor(),
	}
}
