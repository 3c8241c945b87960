package postcard

import (
	"context"

	"ascended/pkg/client"
	"ascended/pkg/engagement"
)

// OpenEnergy shows the transfer popover with the default amount clamped
// to what the user can afford.
func (cd *Card) OpenEnergy(ctx context.Context) error {
	if !cd.api.Authenticated() {
		cd.fail("Sign in required", "Log in to send energy.")
		return client.ErrAuthRequired
	}
	balance, err := cd.viewer.EnergyBalance(ctx)
	if err != nil {
		return err
	}

	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.energyMax = maxTransfer(balance)
	cd.energyOpen = true
	cd.energyAmount = clamp(DefaultEnergyAmount, cd.energyMax)
	return nil
}

// SetEnergyAmount moves the slider and returns the clamped value.
func (cd *Card) SetEnergyAmount(n int) int {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.energyAmount = clamp(n, cd.energyMax)
	return cd.energyAmount
}

func (cd *Card) EnergyAmount() int {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.energyAmount
}

func (cd *Card) EnergyOpen() bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.energyOpen
}

// ConfirmEnergy sends the chosen amount. The popover stays open on failure.
func (cd *Card) ConfirmEnergy(ctx context.Context) error {
	cd.mu.Lock()
	open, amount := cd.energyOpen, cd.energyAmount
	cd.mu.Unlock()
	if !open {
		return client.ErrValidation
	}

	if err := cd.Toggle(ctx, engagement.Energy, amount); err != nil {
		return err
	}
	cd.CloseEnergy()
	return nil
}

func (cd *Card) CloseEnergy() {
	cd.mu.Lock()
	cd.energyOpen = false
	cd.mu.Unlock()
}

// maxTransfer never drops below 1 so the slider keeps a valid range.
func maxTransfer(balance int) int {
	hi := engagement.MaxEnergyAmount
	if balance < hi {
		hi = balance
	}
	if hi < engagement.MinEnergyAmount {
		hi = engagement.MinEnergyAmount
	}
	return hi
}

func clamp(n, hi int) int {
	if hi < engagement.MinEnergyAmount {
		hi = engagement.MinEnergyAmount
	}
	if n < engagement.MinEnergyAmount {
		return engagement.MinEnergyAmount
	}
	if n > hi {
		return hi
	}
	return n
}
