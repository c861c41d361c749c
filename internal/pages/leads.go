// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"strings"

	"wellnesshub/internal/cart"
	"wellnesshub/internal/models"
)

// ErrEmptyCart is returned when checking out without items.
var ErrEmptyCart = &ValidationError{Field: "items", Message: "Your cart is empty."}

func normalizeContact(c models.Contact) models.Contact {
	c.CustomerName = strings.TrimSpace(c.CustomerName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}

// ValidateContact checks the fields shared by every lead form.
func ValidateContact(c models.Contact) error {
	if err := required("customer_name", "Name", c.CustomerName); err != nil {
		return err
	}
	return validEmail("email", c.Email)
}

// Checkout turns the visitor's cart into a cart lead. No payment is taken.
type Checkout struct {
	leads LeadService
}

func NewCheckout(leads LeadService) *Checkout {
	return &Checkout{leads: leads}
}

// Submit sends the cart as a lead and empties it once the backend accepts
// it. A failed submission leaves the cart intact.
func (c *Checkout) Submit(ctx context.Context, items *cart.Store, contact models.Contact, message string) error {
	if items.Empty() {
		return ErrEmptyCart
	}
	contact = normalizeContact(contact)
	if err := ValidateContact(contact); err != nil {
		return err
	}
	lead := models.CartLead{
		Contact: contact,
		Message: strings.TrimSpace(message),
		Items:   items.LeadItems(),
	}
	if err := c.leads.SubmitCart(ctx, lead); err != nil {
		return fmt.Errorf("submit cart lead: %w", err)
	}
	if err := items.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Contact submits the trainer and diet plan request forms.
type Contact struct {
	leads LeadService
}

func NewContact(leads LeadService) *Contact {
	return &Contact{leads: leads}
}

// ValidateTrainer checks a trainer request.
func ValidateTrainer(l models.TrainerLead) error {
	if err := ValidateContact(l.Contact); err != nil {
		return err
	}
	if l.Age < 0 {
		return invalid("age", "Age cannot be negative.")
	}
	return required("message", "Message", l.Message)
}

// ValidateDietPlan checks a diet plan request. Body measurements and the
// target must all be positive.
func ValidateDietPlan(l models.DietPlanLead) error {
	if err := ValidateContact(l.Contact); err != nil {
		return err
	}
	if l.Age < 0 {
		return invalid("age", "Age cannot be negative.")
	}
	if l.WeightKg <= 0 {
		return invalid("weight_kg", "Weight must be a positive number.")
	}
	if l.HeightCm <= 0 {
		return invalid("height_cm", "Height must be a positive number.")
	}
	if l.TargetReductionKg <= 0 {
		return invalid("target_reduction_kg", "Target reduction must be a positive number.")
	}
	return nil
}

func (c *Contact) SubmitTrainer(ctx context.Context, l models.TrainerLead) error {
	l.Contact = normalizeContact(l.Contact)
	l.Message = strings.TrimSpace(l.Message)
	if err := ValidateTrainer(l); err != nil {
		return err
	}
	if err := c.leads.SubmitTrainer(ctx, l); err != nil {
		return fmt.Errorf("submit trainer lead: %w", err)
	}
	return nil
}

func (c *Contact) SubmitDietPlan(ctx context.Context, l models.DietPlanLead) error {
	l.Contact = normalizeContact(l.Contact)
	if err := ValidateDietPlan(l); err != nil {
		return err
	}
	if err := c.leads.SubmitDietPlan(ctx, l); err != nil {
		return fmt.Errorf("submit diet plan lead: %w", err)
	}
	return nil
}
