// Package mail envio de e-mails transacionais via SMTP.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/comanda-app/comanda-api/pkg/config"
)

// Mailer envia os e-mails de verificação e recuperação de senha.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// New constrói o mailer a partir da configuração SMTP.
func New(cfg config.SMTPConfig, baseURL string) *Mailer {
	return &Mailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    cfg.From,
		baseURL: baseURL,
	}
}

// SendVerification envia o link de verificação de e-mail.
func (m *Mailer) SendVerification(to, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"<p>Bem-vindo ao Comanda!</p><p>Confirme seu e-mail clicando <a href=%q>aqui</a>.</p>", link)
	return m.send(to, "Confirme seu e-mail", body)
}

// SendPasswordReset envia o link de redefinição de senha.
func (m *Mailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/redefinir-senha?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"<p>Recebemos um pedido para redefinir sua senha.</p><p>Se foi você, clique <a href=%q>aqui</a>. O link vale por 1 hora.</p>", link)
	return m.send(to, "Redefinição de senha", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar e-mail: %w", err)
	}
	return nil
}
