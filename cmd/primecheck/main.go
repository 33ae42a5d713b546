package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"hotelreserve/internal/pkg/primes"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "primecheck <number> [number...]",
		Short: "Check whether numbers are prime",
		Long: `Check whether each operand is a prime number.

Integer operands are checked directly. A float operand counts as an
integer when it sits within 1e-10 of one; anything else is a type error.
Booleans are never valid operands.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var firstErr error
			for _, arg := range args {
				n, err := parseOperand(arg)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", arg, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				if primes.IsPrime(n) {
					fmt.Fprintf(cmd.OutOrStdout(), "%d is prime\n", n)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%d is not prime\n", n)
				}
			}
			return firstErr
		},
	}
	return cmd
}

func parseOperand(raw string) (int64, error) {
	if raw == "true" || raw == "false" {
		return 0, primes.ErrBoolOperand
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, primes.ErrNotNumber
	}
	return primes.CoerceFloat(f)
}
