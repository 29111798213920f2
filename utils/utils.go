package utils

import (
	"fmt"
	"html"
	"strconv"
)

// HTML wrapper shared by every transactional email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #161D29; padding: 30px; text-align: center; }
			.header h1 { color: #FFD60A; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #161D29; line-height: 1.6; }
			.content h2 { margin-top: 0; }
			.highlight { font-weight: bold; }
			.info-box { background: #F1F2FF; padding: 15px; border-radius: 4px; border-left: 4px solid #FFD60A; margin: 20px 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COURSEHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				If you have any questions, reply to this email and our support team will help.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// CourseEnrollmentSubject is the subject line of the enrollment confirmation.
func CourseEnrollmentSubject(courseName string) string {
	return "Successfully Enrolled into " + courseName
}

// CourseEnrollmentEmail renders the enrollment confirmation body.
func CourseEnrollmentEmail(courseName, name string) string {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully registered for the course <span class="highlight">"%s"</span>.</p>
		<p>Please log in to your learning dashboard to access the course materials and start your learning journey.</p>
	`, html.EscapeString(name), html.EscapeString(courseName))

	return getEmailTemplate("Course Registration Confirmation", body)
}

// PaymentSuccessEmail renders the payment receipt body. amount is already in
// major units.
func PaymentSuccessEmail(name string, amount float64, orderID, paymentID string) string {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received a payment of <span class="highlight">&#8377;%s</span>.</p>
		<div class="info-box">
			<strong>Order ID:</strong> %s<br>
			<strong>Payment ID:</strong> %s
		</div>
	`, html.EscapeString(name), FormatAmount(amount), html.EscapeString(orderID), html.EscapeString(paymentID))

	return getEmailTemplate("Payment Received", body)
}

// MinorToMajor converts an amount in minor currency units (paise, cents) to
// major units.
func MinorToMajor(minor float64) float64 {
	return minor / 100
}

// FormatAmount prints amount without trailing zeros: 500, 123.45.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
