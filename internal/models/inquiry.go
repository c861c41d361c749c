// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// InquiryStatus is the support workflow state of an inquiry. Admins may
// move an inquiry between any two statuses.
type InquiryStatus string

const (
	InquiryNew      InquiryStatus = "New"
	InquiryRead     InquiryStatus = "Read"
	InquiryReplied  InquiryStatus = "Replied"
	InquiryArchived InquiryStatus = "Archived"
)

// InquiryStatuses lists the statuses in workflow order.
var InquiryStatuses = []InquiryStatus{InquiryNew, InquiryRead, InquiryReplied, InquiryArchived}

// Valid reports whether s is one of the four statuses.
func (s InquiryStatus) Valid() bool {
	for _, k := range InquiryStatuses {
		if k == s {
			return true
		}
	}
	return false
}

// Inquiry is a support message submitted through the public site.
type Inquiry struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt string        `json:"createdAt"`
}

// Received returns the parsed creation time, zero when absent.
func (i Inquiry) Received() time.Time {
	t, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
