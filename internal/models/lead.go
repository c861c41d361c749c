// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Contact holds the fields every public lead form shares.
type Contact struct {
	CustomerName string `json:"customerName" schema:"customer_name"`
	Email        string `json:"email" schema:"email"`
	Phone        string `json:"phone" schema:"phone"`
}

// LeadItem is one cart line in a cart lead.
type LeadItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartLead is submitted from checkout. No payment is taken.
type CartLead struct {
	Contact
	Message string     `json:"message" schema:"message"`
	Items   []LeadItem `json:"items" schema:"-"`
}

// TrainerLead requests a personal trainer.
type TrainerLead struct {
	Contact
	Age     int    `json:"age,omitempty" schema:"age"`
	Message string `json:"message" schema:"message"`
}

// DietPlanLead requests a diet plan.
type DietPlanLead struct {
	Contact
	Age               int     `json:"age,omitempty" schema:"age"`
	WeightKg          float64 `json:"weightKg" schema:"weight_kg"`
	HeightCm          float64 `json:"heightCm" schema:"height_cm"`
	TargetReductionKg float64 `json:"targetReductionKg" schema:"target_reduction_kg"`
}

// CartItem is one line of the visitor's cart. It never leaves this server.
type CartItem struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Image string   `json:"image"`
	Type  ItemType `json:"type"`
	Qty   int      `json:"qty"`
}
