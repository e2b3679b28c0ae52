// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lead turns visitor enquiries into WhatsApp deep links.

Nothing is stored: the contact form is validated, formatted as a chat
message and handed back as a wa.me URL for the browser to open.
*/
package lead

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/joycdecor/joycdecor/internal/platform/validate"
)

const (
	// notSpecified fills optional form fields left blank.
	notSpecified = "Not specified"

	// GeneralMessage is sent by the plain "WhatsApp Chat" button.
	GeneralMessage = "Hello! I'm interested in your event planning services. Please provide more information."
)

// ContactForm is the "Get Free Consultation" form.
type ContactForm struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EventType string `json:"eventType"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}

// Validate requires a name and a phone number; email is checked when given.
func (form ContactForm) Validate() error {
	validator := &validate.Validator{}

	validator.Required("name", form.Name).MaxLen("name", form.Name, 100)
	validator.Required("phone", form.Phone).MaxLen("phone", form.Phone, 20)
	validator.Custom("phone", strings.TrimSpace(form.Phone) != "" && !looksLikePhone(form.Phone), "Must be a valid phone number")
	if strings.TrimSpace(form.Email) != "" {
		validator.Email("email", form.Email)
	}
	validator.MaxLen("eventType", form.EventType, 50)
	validator.MaxLen("message", form.Message, 2000)

	return validator.Err()
}

// Text renders the form as the WhatsApp chat message.
func (form ContactForm) Text() string {
	var builder strings.Builder

	builder.WriteString("🎉 *New Event Planning Inquiry* 🎉\n\n")
	fmt.Fprintf(&builder, "*Name:* %s\n", strings.TrimSpace(form.Name))
	fmt.Fprintf(&builder, "*Email:* %s\n", orDefault(form.Email))
	fmt.Fprintf(&builder, "*Phone:* %s\n", strings.TrimSpace(form.Phone))
	fmt.Fprintf(&builder, "*Event Type:* %s\n", orDefault(form.EventType))
	fmt.Fprintf(&builder, "*Event Date:* %s\n\n", orDefault(form.Date))
	fmt.Fprintf(&builder, "*Message:*\n%s\n\n", strings.TrimSpace(form.Message))
	builder.WriteString("---\nSent via Event Decor Website")

	return builder.String()
}

// EnquiryText is the message for an enquiry about one catalog item.
func EnquiryText(title string) string {
	return "Hi! I'm interested in \"" + strings.TrimSpace(title) + "\". Please provide more details."
}

// Linker builds wa.me links for one business number.
type Linker struct {
	number string
}

// NewLinker keeps only the digits of number (country code included).
func NewLinker(number string) Linker {
	return Linker{number: digits(number)}
}

// URL returns the deep link opening a chat prefilled with text.
// Spaces are sent as %20, matching encodeURIComponent in the browser.
func (linker Linker) URL(text string) string {
	return "https://wa.me/" + linker.number + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// EnquiryURL implements the catalog enquiry redirect.
func (linker Linker) EnquiryURL(title string) string {
	return linker.URL(EnquiryText(title))
}

func orDefault(value string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return notSpecified
}

func looksLikePhone(value string) bool {
	count := len(digits(value))
	if count < 7 || count > 15 {
		return false
	}
	for _, r := range value {
		if !strings.ContainsRune("0123456789+-() ", r) {
			return false
		}
	}
	return true
}

func digits(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}
