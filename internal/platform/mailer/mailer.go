// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package mailer sends transactional email (password reset links).
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(context context.Context, message Message) error
}

// sendFunc matches [smtp.SendMail].
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends through an authenticated SMTP relay (STARTTLS on 587).
type SMTPMailer struct {
	addr     string
	host     string
	username string
	password string
	send     sendFunc
	now      func() time.Time
}

// NewSMTPMailer creates a mailer for host:port using PLAIN auth.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		host:     host,
		username: username,
		password: password,
		send:     smtp.SendMail,
		now:      time.Now,
	}
}

// Send delivers the message. net/smtp has no context support, so a
// cancelled context is only honoured before the dial.
func (mailer *SMTPMailer) Send(context context.Context, message Message) error {
	if err := context.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)
	body := Compose(mailer.username, message, mailer.now())

	if err := mailer.send(mailer.addr, auth, mailer.username, []string{message.To}, body); err != nil {
		return fmt.Errorf("mailer: smtp send to %s failed: %w", message.To, err)
	}
	return nil
}

// Compose renders the RFC 5322 message bytes.
func Compose(from string, message Message, at time.Time) []byte {
	headers := []string{
		"From: JoycDecor <" + from + ">",
		"To: " + sanitizeHeader(message.To),
		"Subject: " + sanitizeHeader(message.Subject),
		"Date: " + at.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + message.HTML)
}

// sanitizeHeader strips CR/LF so user input cannot inject headers.
func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(value)
}

// LogMailer writes messages to the log instead of sending them.
// It is used in development and whenever SMTP is not configured.
type LogMailer struct {
	Logger *slog.Logger
}

// Send logs the recipient and subject; the body is logged at debug level.
func (mailer LogMailer) Send(context context.Context, message Message) error {
	mailer.Logger.InfoContext(context, "mail_not_sent_smtp_disabled",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)
	mailer.Logger.DebugContext(context, "mail_body", slog.String("html", message.HTML))
	return nil
}
