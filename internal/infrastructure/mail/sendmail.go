package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"gopkg.in/gomail.v2"
)

// SendmailTransport pipes the MIME message to the local sendmail binary, which reads the
// recipients from the headers.
type SendmailTransport struct {
	path string
}

func CreateSendmailTransport(path string) *SendmailTransport {
	return &SendmailTransport{path: path}
}

func (t *SendmailTransport) Name() string {
	return "sendmail"
}

func (t *SendmailTransport) Send(ctx context.Context, msg *gomail.Message) error {
	send := gomail.SendFunc(func(from string, to []string, m io.WriterTo) error {
		cmd := exec.CommandContext(ctx, t.path, "-t", "-i")

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return err
		}
		if err := cmd.Start(); err != nil {
			return err
		}

		_, writeErr := m.WriteTo(stdin)
		stdin.Close()

		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("sendmail: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return writeErr
	})

	return gomail.Send(send, msg)
}
