package utils

import (
	"achievo/config"
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendOrganizationVerifiedEmail notifies an organization that its
// verification was approved. Failures are logged and never affect the
// request that triggered the notification.
func SendOrganizationVerifiedEmail(orgName, contactEmail string) {
	if config.AppConfig.SendGridKey == "" {
		log.Println("SendGrid key missing, skipping verification email for", orgName)
		return
	}
	if !strings.Contains(contactEmail, "@") {
		log.Printf("Organization %s has no contact email, skipping verification email", orgName)
		return
	}

	from := mail.NewEmail("Achievo", config.AppConfig.EmailSender)
	to := mail.NewEmail(orgName, contactEmail)
	subject := "Your organization has been verified"

	plain := fmt.Sprintf("Hi %s,\n\nYour organization has been verified on Achievo. You can now issue certificates and mint NFT credentials.\n", orgName)
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 500px; margin: auto;">
			<h2>Organization verified</h2>
			<p>Hi %s,</p>
			<p>Your organization has been verified on Achievo. You can now issue certificates and mint NFT credentials.</p>
		</div>`, orgName)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending verification email to %s: %v", contactEmail, err)
		return
	}
	if response.StatusCode >= 400 {
		log.Printf("Verification email to %s rejected with status %d", contactEmail, response.StatusCode)
		return
	}

	log.Println("Verification email sent to", contactEmail)
}
