package main

import (
	"fmt"

	"github.com/fjod/go_shop/internal/config"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/platform"
)

// seed registers the configured demo products and users. Entries that are
// already registered are skipped.
func seed(p *platform.Platform, cfg config.SeedConfig) error {
	for _, sp := range cfg.Products {
		product, err := domain.NewProduct(sp.ID, sp.Name, sp.Price, sp.Stock)
		if err != nil {
			return fmt.Errorf("seed product: %w", err)
		}
		p.RegisterProduct(product)
	}

	for _, su := range cfg.Users {
		user, err := domain.NewUser(su.ID, su.Username, su.Email)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		if su.Address != "" {
			if err := user.SetAddress(su.Address); err != nil {
				return fmt.Errorf("seed user %s: %w", su.ID, err)
			}
		}
		p.RegisterUser(user)
	}

	return nil
}
