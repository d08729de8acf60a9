package auth

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

type mailParams struct {
	FullName string
	Code     string
	Minutes  int
	Action   string
}

var codeTemplate = template.Must(template.New("code").Parse(`<p>Hi {{.FullName}},</p>
<p>Use this code to {{.Action}}:</p>
<p style="font-size:24px;letter-spacing:4px"><b>{{.Code}}</b></p>
<p>The code is valid for {{.Minutes}} minutes.</p>
<p>If you did not request it, you can ignore this email.</p>`))

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<p>Hi {{.FullName}},</p>
<p>Your password was {{.Action}} successfully.</p>
<p>If this was not you, reset your password right away.</p>`))

func codeMessage(purpose CodePurpose, user User, code string, ttl time.Duration) (subject, body string, err error) {
	p := mailParams{FullName: user.FullName, Code: code, Minutes: int(ttl.Minutes())}
	switch purpose {
	case PurposeUpdate:
		subject, p.Action = "Password update code", "confirm your password update"
	case PurposeReset:
		subject, p.Action = "Password reset code", "reset your password"
	default:
		return "", "", fmt.Errorf("unknown code purpose %q", purpose)
	}
	body, err = render(codeTemplate, p)
	return subject, body, err
}

func confirmationMessage(purpose CodePurpose, user User) (subject, body string, err error) {
	p := mailParams{FullName: user.FullName}
	switch purpose {
	case PurposeUpdate:
		subject, p.Action = "Your password was updated", "updated"
	case PurposeReset:
		subject, p.Action = "Your password was reset", "reset"
	default:
		return "", "", fmt.Errorf("unknown code purpose %q", purpose)
	}
	body, err = render(confirmationTemplate, p)
	return subject, body, err
}

func render(t *template.Template, p mailParams) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
