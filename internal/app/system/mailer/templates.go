// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
)

// WelcomeEmailData holds data for the registration email. Password is the
// generated plaintext; this email is the only place it ever appears.
type WelcomeEmailData struct {
	SiteName string
	Name     string
	Surname  string
	Role     string
	Username string
	Password string
}

// BuildWelcomeEmail creates the registration email with the account's
// generated credentials.
func BuildWelcomeEmail(data WelcomeEmailData) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hello %s %s,\n\n", data.Name, data.Surname)
	fmt.Fprintf(&buf, "You have been registered as a %s in the system.\n\n", data.Role)
	buf.WriteString("Here are your login details:\n")
	fmt.Fprintf(&buf, "Username: %s\n", data.Username)
	fmt.Fprintf(&buf, "Password: %s\n\n", data.Password)
	fmt.Fprintf(&buf, "Best regards,\n%s", data.SiteName)

	return Email{
		To:       "", // set by caller
		Subject:  fmt.Sprintf("Welcome to %s", data.SiteName),
		TextBody: buf.String(),
	}
}

// ResetEmailData holds data for the password-reset email.
type ResetEmailData struct {
	SiteName  string
	Name      string
	ResetLink string
}

// BuildResetEmail creates the password-reset email.
func BuildResetEmail(data ResetEmailData) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hello %s,\n\n", data.Name)
	buf.WriteString("Click the link below to reset your password:\n\n")
	buf.WriteString(data.ResetLink + "\n\n")
	fmt.Fprintf(&buf, "Best regards,\n%s", data.SiteName)

	return Email{
		Subject:  "Reset Your Password",
		TextBody: buf.String(),
	}
}

// AssignmentEmailData holds data for the guide assignment notice.
type AssignmentEmailData struct {
	SiteName   string
	GuideName  string
	SchoolName string
	City       string
	District   string
}

// BuildAssignmentEmail creates the notice sent to a guide when a
// coordinator assigns them to a tour.
func BuildAssignmentEmail(data AssignmentEmailData) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hello %s,\n\n", data.GuideName)
	buf.WriteString("You have been assigned to a new tour.\n\n")
	buf.WriteString("Tour Details:\n")
	fmt.Fprintf(&buf, "School Name: %s\n", data.SchoolName)
	fmt.Fprintf(&buf, "City: %s\n", data.City)
	fmt.Fprintf(&buf, "District: %s\n\n", data.District)
	fmt.Fprintf(&buf, "Best regards,\n%s", data.SiteName)

	return Email{
		Subject:  "New Assignment Notification",
		TextBody: buf.String(),
	}
}

// ApprovalEmailData holds data for the application approval notice.
type ApprovalEmailData struct {
	SiteName string
	TourID   string
}

// BuildApprovalEmail creates the notice sent to an applicant when their
// tour application is approved.
func BuildApprovalEmail(data ApprovalEmailData) Email {
	var buf bytes.Buffer
	buf.WriteString("Dear Applicant,\n\n")
	fmt.Fprintf(&buf, "Your application for the tour (ID: %s) has been approved. ", data.TourID)
	buf.WriteString("Please contact us for further details regarding the next steps and tour arrangements.\n\n")
	fmt.Fprintf(&buf, "Best regards,\n%s Team", data.SiteName)

	return Email{
		Subject:  "Tour Application Approved",
		TextBody: buf.String(),
	}
}
