package utils

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// GenerateVerificationCode returns a random 6-digit code.
func GenerateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform is broken; still return
		// something usable rather than panicking signup.
		return "000000"
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}

// SendVerificationEmail mails the signup verification code. When SMTP
// credentials are not configured it runs in test mode: the code is logged and
// the caller is told to surface it in the response, mirroring local dev setups
// without a mail account. Returns testMode=true in that case.
func SendVerificationEmail(email, code string) (testMode bool, err error) {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	if host == "" || user == "" || pass == "" {
		log.Printf("📧 TEST MODE: verification code for %s: %s", email, code)
		log.Println("   Set SMTP_HOST, SMTP_USER and SMTP_PASS in .env for real emails")
		return true, nil
	}

	port := 587
	if p, convErr := strconv.Atoi(os.Getenv("SMTP_PORT")); convErr == nil {
		port = p
	}

	m := gomail.NewMessage()
	m.SetHeader("From", user)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Campus Commerce - Email Verification")
	m.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px">
			<h2>Welcome to Campus Commerce!</h2>
			<p>Your verification code is:</p>
			<h1 style="letter-spacing:8px">%s</h1>
			<p>This code expires in 10 minutes. If you did not request it, ignore this email.</p>
		</div>`, code))

	d := gomail.NewDialer(host, port, user, pass)
	if err := d.DialAndSend(m); err != nil {
		return false, fmt.Errorf("failed to send verification email: %w", err)
	}
	return false, nil
}
