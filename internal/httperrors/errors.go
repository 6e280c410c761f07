// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures into troubleshooting help for
// the operator.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	apperrors "eventsops/cli/internal/errors"

	"github.com/pterm/pterm"
)

// Class is the detected category of a transport failure.
type Class int

const (
	ClassGeneric Class = iota
	ClassTimeout
	ClassDNS
	ClassRefused
	ClassTLS
	ClassServer
)

// Help is what the operator sees for a failure.
type Help struct {
	Class   Class
	Title   string
	Intro   string
	Bullets []string
	Footer  string
	Details string
}

// FormatNetworkError prints troubleshooting help for err and returns it
// wrapped as a network error.
func FormatNetworkError(err error, action, baseURL string) error {
	if err == nil {
		return nil
	}
	Print(Describe(err, action, baseURL))
	return apperrors.Wrap(apperrors.Network, "cannot reach the EventsOps API", err)
}

// Classify detects the failure category of err.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassGeneric
	case isTimeoutError(err):
		return ClassTimeout
	case isDNSError(err):
		return ClassDNS
	case isConnectionRefusedError(err):
		return ClassRefused
	case isSSLError(err):
		return ClassTLS
	case isServerError(err.Error()):
		return ClassServer
	default:
		return ClassGeneric
	}
}

// Describe builds the help for err. action completes "while ...".
func Describe(err error, action, baseURL string) Help {
	host := ExtractHostFromURL(baseURL)
	h := Help{Class: Classify(err)}

	switch h.Class {
	case ClassTimeout:
		h.Title = fmt.Sprintf("⏱️  Connection timeout while %s", action)
		h.Intro = "The server took too long to respond. This could mean:"
		h.Bullets = []string{
			"Slow internet connection",
			"Server is under heavy load",
			"Network firewall is blocking the connection",
		}
		h.Footer = "Please try again in a few moments."
	case ClassDNS:
		h.Title = fmt.Sprintf("🌐 Cannot resolve server address while %s", action)
		h.Intro = fmt.Sprintf("Unable to look up %s. Please check:", host)
		h.Bullets = []string{
			"The API address is spelled correctly (--api-url or EVENTSOPS_API_URL)",
			"Your internet connection is working",
			"DNS settings are correct",
		}
	case ClassRefused:
		h.Title = fmt.Sprintf("🚫 Connection refused while %s", action)
		h.Intro = fmt.Sprintf("Nothing is accepting connections at %s. This could mean:", host)
		h.Bullets = []string{
			"The EventsOps API is not running",
			"Wrong server address or port",
			"Firewall is blocking the connection",
		}
		h.Footer = "Point the CLI at your API with --api-url or EVENTSOPS_API_URL."
	case ClassTLS:
		h.Title = fmt.Sprintf("🔒 Secure connection failed while %s", action)
		h.Intro = "Cannot establish a secure HTTPS connection. This could mean:"
		h.Bullets = []string{
			"SSL/TLS certificate issue",
			"Network proxy interfering with HTTPS",
			"System clock is incorrect",
		}
	case ClassServer:
		h.Title = fmt.Sprintf("⚠️  Server error while %s", action)
		h.Intro = fmt.Sprintf("The EventsOps API at %s answered with a server error.", host)
		h.Footer = "This is not a problem with your setup. Please try again in a few minutes."
	default:
		h.Title = fmt.Sprintf("❌ Cannot connect to the EventsOps API while %s", action)
		h.Intro = "Please check:"
		h.Bullets = []string{
			"Your internet connection",
			fmt.Sprintf("Whether %s is reachable from your network", host),
			"Firewall settings that might block the request",
		}
	}

	if details := err.Error(); details != "" {
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		h.Details = details
	}
	return h
}

// Print renders h with pterm.
func Print(h Help) {
	pterm.Println(h.Title)
	pterm.Println()
	if h.Intro != "" {
		pterm.Println(h.Intro)
	}
	for _, b := range h.Bullets {
		pterm.Println("  • " + b)
	}
	if h.Intro != "" || len(h.Bullets) > 0 {
		pterm.Println()
	}
	if h.Footer != "" {
		pterm.Println(h.Footer)
		pterm.Println()
	}
	if h.Details != "" {
		pterm.Debug.Printf("Technical details: %s\n", h.Details)
	}
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the error indicates a server-side problem (5xx errors).
func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	return strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable") ||
		strings.Contains(lower, "gateway timeout")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "the server"
	}
	return u.Host
}
