// Package mail delivers the rendered report by e-mail.
//
// Dispatcher resolves the addresses, subject and attachment from the run
// settings, loads the credential file and hands a single message to a
// Sender. Two senders exist:
//
//   - SMTPSender authenticates against an SMTP server and sends the message.
//   - OutboxSender writes the MIME message to a directory instead; it is
//     selected with `provider: outbox` in the credential file and is meant
//     for local development.
//
// The credential file is YAML (JSON is accepted too, being a subset):
//
//	provider: smtp
//	host: smtp.gmail.com
//	port: 587
//	username: robo@example.com
//	password: app-password
//	tls: starttls
package mail
