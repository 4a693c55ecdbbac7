package mail

import "gopkg.in/gomail.v2"

type Envelope struct {
	FromEmail string
	FromName  string
	To        string
	Subject   string
	HTMLBody  string
	TextBody  string
}

// BuildMessage returns a multipart/alternative message with the plain-text part first and the
// HTML part as the preferred alternative.
func BuildMessage(env Envelope) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetAddressHeader("From", env.FromEmail, env.FromName)
	m.SetHeader("Reply-To", env.FromEmail)
	m.SetHeader("To", env.To)
	m.SetHeader("Subject", env.Subject)

	if env.TextBody != "" {
		m.SetBody("text/plain", env.TextBody)
		m.AddAlternative("text/html", env.HTMLBody)
	} else {
		m.SetBody("text/html", env.HTMLBody)
	}

	return m
}
