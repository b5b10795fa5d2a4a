package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// ErrSignupNotSupported indicates that signup is not supported.
var ErrSignupNotSupported = errors.New("signup not supported")

const minPhoneDigits = 10

// terminalAuth answers gotd's login prompts from config, falling back to
// the terminal for whatever is not configured.
type terminalAuth struct {
	phone    string
	password string
	in       *bufio.Reader
	out      io.Writer
	warn     func(msg string)
	info     func(phone string)
}

func (r *Reader) authFlow() auth.Flow {
	return auth.NewFlow(&terminalAuth{
		phone:    r.cfg.TGPhone,
		password: r.cfg.TG2FAPassword,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		warn:     func(msg string) { r.logger.Warn().Msg(msg) },
		info:     func(phone string) { r.logger.Info().Str("phone", phone).Msg("Using phone number") },
	}, auth.SendCodeOptions{})
}

func (a *terminalAuth) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(a.out, label)

	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}

	return strings.TrimSpace(line), nil
}

func (a *terminalAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	return a.prompt("Enter code: ")
}

func (a *terminalAuth) Phone(_ context.Context) (string, error) {
	phone := a.phone
	if phone == "" {
		var err error

		if phone, err = a.prompt("Enter phone: "); err != nil {
			return "", err
		}
	}

	phone = sanitizePhone(phone)

	if a.info != nil {
		a.info(maskPhone(phone))
	}

	if len(phone) < minPhoneDigits && a.warn != nil {
		a.warn("Phone number seems too short, it might be invalid. Ensure it includes country code (e.g. +358...)")
	}

	return phone, nil
}

func (a *terminalAuth) Password(_ context.Context) (string, error) {
	if a.password != "" {
		return a.password, nil
	}

	return a.prompt("Enter 2FA password: ")
}

func (a *terminalAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a *terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, ErrSignupNotSupported
}

func sanitizePhone(phone string) string {
	var sb strings.Builder

	phone = strings.TrimSpace(phone)

	if strings.HasPrefix(phone, "+") {
		sb.WriteByte('+')

		phone = phone[1:]
	}

	for _, char := range phone {
		if char >= '0' && char <= '9' {
			sb.WriteRune(char)
		}
	}

	return sb.String()
}

func maskPhone(phone string) string {
	if len(phone) < 7 {
		return "****"
	}

	return phone[:3] + "****" + phone[len(phone)-2:]
}
