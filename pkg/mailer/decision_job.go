package mailer

import "fmt"

// DecisionJob is the JSON payload put on the RabbitMQ queue when a KYC
// review decision is made. The notify worker renders and sends it.
type DecisionJob struct {
	To       string `json:"to"`
	FullName string `json:"full_name"`
	KycID    string `json:"kyc_id"`
	UserID   string `json:"user_id"`
	RoleType string `json:"role_type"`
	Decision string `json:"decision"` // APPROVED or REJECTED
}

// Subject returns the email subject line for the decision.
func (j DecisionJob) Subject() string {
	if j.Decision == "APPROVED" {
		return "Your identity verification was approved"
	}
	return "Your identity verification was not approved"
}

// Text returns the plain-text body.
func (j DecisionJob) Text() string {
	if j.Decision == "APPROVED" {
		return fmt.Sprintf(
			"Hi %s,\n\nYour identity verification has been approved and your %s profile is now active.\n",
			j.FullName, j.RoleType)
	}
	return fmt.Sprintf(
		"Hi %s,\n\nUnfortunately your identity verification was rejected. Please contact support for details.\n",
		j.FullName)
}

// HTML returns a minimal HTML body.
func (j DecisionJob) HTML() string {
	if j.Decision == "APPROVED" {
		return fmt.Sprintf(
			"<p>Hi %s,</p><p>Your identity verification has been <strong>approved</strong> and your %s profile is now active.</p>",
			j.FullName, j.RoleType)
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Unfortunately your identity verification was <strong>rejected</strong>. Please contact support for details.</p>",
		j.FullName)
}
