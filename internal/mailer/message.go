package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/mail"
	"time"
)

const LoginSubject = "Successful Login - Heart Disease Prediction System"

var loginBodyTemplate = template.Must(template.New("login").Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2 style="color: #ff4b4b;">Login Successful!</h2>
      <p>Dear User,</p>
      <p>You have successfully logged into the Heart Disease Prediction System.</p>
      <p style="background-color: #fff3cd; padding: 10px; border-radius: 5px;">
        If this was not you, please contact our support team immediately at {{.Support}}.
      </p>
      <br>
      <p>Best regards,</p>
      <p>Heart Disease Prediction System Team</p>
      <hr>
      <p style="font-size: 12px; color: #666;">
        This is an automated message. Please do not reply to this email.
      </p>
    </div>
  </body>
</html>
`))

type loginBody struct {
	Support string
}

// composeLogin renders the full RFC 5322 message for a login notification.
func composeLogin(from string, to string, sentAt time.Time) ([]byte, error) {
	var body bytes.Buffer
	if err := loginBodyTemplate.Execute(&body, loginBody{Support: from}); err != nil {
		return nil, fmt.Errorf("render login body: %w", err)
	}

	var message bytes.Buffer
	headers := [][2]string{
		{"From", (&mail.Address{Address: from}).String()},
		{"To", (&mail.Address{Address: to}).String()},
		{"Subject", LoginSubject},
		{"Date", sentAt.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/html; charset="UTF-8"`},
	}
	for _, header := range headers {
		fmt.Fprintf(&message, "%s: %s\r\n", header[0], header[1])
	}
	message.WriteString("\r\n")
	message.Write(bytes.ReplaceAll(body.Bytes(), []byte("\n"), []byte("\r\n")))
	return message.Bytes(), nil
}
